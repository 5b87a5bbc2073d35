package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lexbrit/traduko/internal/cli"
	"github.com/lexbrit/traduko/internal/translation"
)

func runTranslate(args []string) int {
	fs := flag.NewFlagSet("translate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 2*time.Minute, "Command timeout")
	source := fs.String("from", "auto", "Source language (ISO 639-1, or auto)")
	target := fs.String("to", "", "Target language (ISO 639-1, for example: es)")
	provider := fs.String("provider", "", "Translation provider name (for example: mymemory, local)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "translate requires the text to translate as its argument")
		return 2
	}

	targetLang := strings.ToLower(strings.TrimSpace(*target))
	if !translation.IsSupportedLanguage(targetLang) {
		fmt.Fprintf(os.Stderr, "--to is required and must be one of: %s\n",
			strings.Join(translation.SupportedLanguageCodes(), ", "))
		return 2
	}

	text := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if text == "" {
		fmt.Fprintln(os.Stderr, "translate argument must not be empty")
		return 2
	}

	rt, err := newRuntime(envLoader, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		return 1
	}
	defer rt.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	result, err := rt.translator.Translate(ctx, text, *source, targetLang, *provider)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Translate failed: %v\n", err)
		return 1
	}

	fmt.Println(result.TranslatedText)
	return 0
}
