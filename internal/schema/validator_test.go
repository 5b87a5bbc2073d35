package schema

import (
	"encoding/json"
	"testing"
)

func TestValidateTranslateRequest(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{
			name:    "valid full request",
			payload: `{"text":"hello","source_lang":"en","target_lang":"es"}`,
		},
		{
			name:    "source defaults to auto",
			payload: `{"text":"hello","target_lang":"es"}`,
		},
		{
			name:    "missing text",
			payload: `{"target_lang":"es"}`,
			wantErr: true,
		},
		{
			name:    "blank text",
			payload: `{"text":"   ","target_lang":"es"}`,
			wantErr: true,
		},
		{
			name:    "target outside language set",
			payload: `{"text":"hello","target_lang":"pt"}`,
			wantErr: true,
		},
		{
			name:    "auto not allowed as target",
			payload: `{"text":"hello","target_lang":"auto"}`,
			wantErr: true,
		},
		{
			name:    "unknown field rejected",
			payload: `{"text":"hello","target_lang":"es","mode":"fast"}`,
			wantErr: true,
		},
		{
			name:    "malformed JSON",
			payload: `{"text":`,
			wantErr: true,
		},
		{
			name:    "trailing content",
			payload: `{"text":"hello","target_lang":"es"}{}`,
			wantErr: true,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req, err := ValidateTranslateRequest(json.RawMessage(tc.payload))
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected validation error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if req.SourceLang == "" {
				t.Fatal("source_lang must default to auto")
			}
		})
	}
}
