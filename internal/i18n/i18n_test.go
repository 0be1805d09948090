package i18n

import (
	"sort"
	"testing"
	"testing/fstest"
)

func TestDetectLanguage(t *testing.T) {
	envVars := []string{"LANG", "LC_ALL", "LC_MESSAGES", "LANGUAGE"}

	tests := []struct {
		name     string
		envSetup map[string]string
		want     string
	}{
		{
			name:     "LANG variable",
			envSetup: map[string]string{"LANG": "es_ES.UTF-8"},
			want:     "es",
		},
		{
			name:     "LC_ALL variable",
			envSetup: map[string]string{"LC_ALL": "fr_FR.UTF-8"},
			want:     "fr",
		},
		{
			name:     "LANGUAGE variable with colon syntax",
			envSetup: map[string]string{"LANGUAGE": "pt_BR:pt:en"},
			want:     "pt",
		},
		{
			name:     "Variable precedence (LANG over LC_ALL)",
			envSetup: map[string]string{"LANG": "es_ES.UTF-8", "LC_ALL": "fr_FR.UTF-8"},
			want:     "es",
		},
		{
			name:     "C locale is skipped",
			envSetup: map[string]string{"LANG": "C.UTF-8", "LC_MESSAGES": "de_DE.UTF-8"},
			want:     "de",
		},
		{
			name:     "No language set",
			envSetup: map[string]string{},
			want:     DefaultLanguage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range envVars {
				t.Setenv(key, "")
			}
			for key, val := range tt.envSetup {
				t.Setenv(key, val)
			}

			if got := DetectLanguage(); got != tt.want {
				t.Errorf("DetectLanguage() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTranslation(t *testing.T) {
	if err := InitWithFS(LocaleFS, "en"); err != nil {
		t.Fatalf("Failed to initialize i18n: %v", err)
	}

	testCases := []struct {
		name      string
		lang      string
		messageID string
		data      map[string]any
		expected  string
	}{
		{
			name:      "Basic translation",
			lang:      "en",
			messageID: "config_loaded",
			data:      map[string]any{"Path": "argstore.toml"},
			expected:  "Loaded configuration from argstore.toml",
		},
		{
			name:      "Spanish translation",
			lang:      "es",
			messageID: "config_loaded",
			data:      map[string]any{"Path": "argstore.toml"},
			expected:  "Configuración cargada desde argstore.toml",
		},
		{
			name:      "Unknown language falls back to English",
			lang:      "xx",
			messageID: "args_parsed",
			expected:  "Parsed command line",
		},
		{
			name:      "Unknown message ID",
			lang:      "en",
			messageID: "unknown_message_id",
			expected:  "unknown_message_id",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			SetLanguage(tc.lang)
			if got := T(tc.messageID, tc.data); got != tc.expected {
				t.Errorf("Expected '%s', got '%s'", tc.expected, got)
			}
		})
	}
}

func TestPlural(t *testing.T) {
	if err := InitWithFS(LocaleFS, "en"); err != nil {
		t.Fatalf("Failed to initialize i18n: %v", err)
	}

	if got := Tp("flags_parsed", 1, nil); got != "1 flag set" {
		t.Errorf("Expected '1 flag set', got '%s'", got)
	}
	if got := Tp("flags_parsed", 3, nil); got != "3 flags set" {
		t.Errorf("Expected '3 flags set', got '%s'", got)
	}
}

func TestLanguages(t *testing.T) {
	if err := InitWithFS(LocaleFS, "en"); err != nil {
		t.Fatalf("Failed to initialize i18n: %v", err)
	}

	langs := Languages()
	sort.Strings(langs)
	if len(langs) != 2 || langs[0] != "en" || langs[1] != "es" {
		t.Errorf("Expected [en es], got %v", langs)
	}
}

func TestInitWithFSErrors(t *testing.T) {
	if err := InitWithFS(fstest.MapFS{}, "en"); err == nil {
		t.Error("Expected error for missing locales directory")
	}

	broken := fstest.MapFS{
		"locales/en.toml": &fstest.MapFile{Data: []byte("not = [valid")},
	}
	if err := InitWithFS(broken, "en"); err == nil {
		t.Error("Expected error for malformed message file")
	}
}
