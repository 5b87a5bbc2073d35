package config

import "testing"

func TestValidate_DefaultsAreValid(t *testing.T) {
	cfg := Config{
		Environment: "local",
		LogLevel:    "info",
		StoreDriver: "memory",
		SQLitePath:  "traduko.db",
		DBMaxConns:  8,
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got: %v", err)
	}
}

func TestValidate_DriverRequirements(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "postgres requires DATABASE_URL",
			cfg:     Config{StoreDriver: "postgres", DBMaxConns: 8},
			wantErr: true,
		},
		{
			name:    "postgres with DATABASE_URL",
			cfg:     Config{StoreDriver: "postgres", DatabaseURL: "postgres://localhost/traduko", DBMaxConns: 8},
			wantErr: false,
		},
		{
			name:    "firestore requires project id",
			cfg:     Config{StoreDriver: "firestore", DBMaxConns: 8},
			wantErr: true,
		},
		{
			name:    "firestore with project id",
			cfg:     Config{StoreDriver: "firestore", FirestoreProjectID: "demo-project", DBMaxConns: 8},
			wantErr: false,
		},
		{
			name:    "sqlite requires path",
			cfg:     Config{StoreDriver: "sqlite", SQLitePath: "  ", DBMaxConns: 8},
			wantErr: true,
		},
		{
			name:    "unknown driver rejected",
			cfg:     Config{StoreDriver: "cassandra", DBMaxConns: 8},
			wantErr: true,
		},
		{
			name:    "max conns must be positive",
			cfg:     Config{StoreDriver: "memory", DBMaxConns: 0},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.cfg.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}
