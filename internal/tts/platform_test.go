package tts

import (
	"context"
	"fmt"
	"reflect"
	"testing"
)

const espeakVoiceListing = `Pty Language Age/Gender VoiceName          File          Other Languages
 5  en-gb          M  english             en            (en-uk 2)
 5  en-us          M  english-us          en-us         (en-r 5)
 7  en-gb          F  english_north       other/en-n
 5  es             M  spanish             es
`

func TestParseESpeakVoices(t *testing.T) {
	got := parseESpeakVoices(espeakVoiceListing)
	want := []voiceInfo{
		{Lang: "en-gb", Gender: "M", Name: "english"},
		{Lang: "en-us", Gender: "M", Name: "english-us"},
		{Lang: "en-gb", Gender: "F", Name: "english_north"},
		{Lang: "es", Gender: "M", Name: "spanish"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseESpeakVoices() = %+v, want %+v", got, want)
	}
}

func TestChooseVoice(t *testing.T) {
	voices := parseESpeakVoices(espeakVoiceListing)

	tests := []struct {
		lang string
		want string
	}{
		{"en", "english_north"}, // feminine voice preferred
		{"es", "spanish"},       // first match when none feminine
		{"fr", ""},              // no match, platform default
	}
	for _, tt := range tests {
		if got := chooseVoice(voices, tt.lang); got != tt.want {
			t.Errorf("chooseVoice(%q) = %q, want %q", tt.lang, got, tt.want)
		}
	}
}

func TestSpeechArgs(t *testing.T) {
	tests := []struct {
		name   string
		engine string
		u      Utterance
		voice  string
		want   []string
	}{
		{
			name:   "espeak default rate",
			engine: "espeak-ng",
			u:      Utterance{Text: "hola"},
			voice:  "spanish",
			want:   []string{"-s", "140", "-v", "spanish", "hola"}, // 175 * 0.8
		},
		{
			name:   "espeak fast rate",
			engine: "espeak",
			u:      Utterance{Text: "hi", Rate: 2.0},
			want:   []string{"-s", "350", "hi"},
		},
		{
			name:   "say uses -r",
			engine: "say",
			u:      Utterance{Text: "hello", Rate: 1.0},
			voice:  "Samantha",
			want:   []string{"-r", "175", "-v", "Samantha", "hello"},
		},
		{
			name:   "out of range rate is clamped",
			engine: "espeak-ng",
			u:      Utterance{Text: "hi", Rate: 9.0},
			want:   []string{"-s", "350", "hi"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := speechArgs(tt.engine, tt.u, tt.voice); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("speechArgs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSynthesizeWithoutEngineIsCapabilityMissing(t *testing.T) {
	b := NewPlatformBackend("en", testLogger())
	b.lookPath = func(string) (string, error) { return "", fmt.Errorf("not found") }

	if b.Available() {
		t.Error("Available() = true with no engine on PATH")
	}

	err := b.Synthesize(context.Background(), Utterance{Text: "hello"}, Callbacks{
		OnStart: func() { t.Error("OnStart fired with no engine") },
	})
	f := AsFailure(err)
	if f == nil || f.Code != CodeCapabilityMissing {
		t.Fatalf("Synthesize() error = %v, want CAPABILITY_MISSING", err)
	}
}

func TestPickVoiceOnlyQueriesESpeakFamily(t *testing.T) {
	b := NewPlatformBackend("en", testLogger())
	queried := 0
	b.listVoices = func(enginePath, lang string) (string, error) {
		queried++
		if lang != "en" {
			t.Errorf("lang = %q, want en", lang)
		}
		return espeakVoiceListing, nil
	}

	if got := b.pickVoice("/usr/bin/espeak-ng"); got != "english_north" {
		t.Errorf("pickVoice() = %q, want english_north", got)
	}
	// Cached after the first probe.
	b.pickVoice("/usr/bin/espeak-ng")
	if queried != 1 {
		t.Errorf("voice listings = %d, want 1", queried)
	}
}

func TestPickVoiceSkipsNonESpeakEngines(t *testing.T) {
	b := NewPlatformBackend("en", testLogger())
	b.listVoices = func(string, string) (string, error) {
		t.Error("listVoices called for non-espeak engine")
		return "", nil
	}
	if got := b.pickVoice("/usr/bin/say"); got != "" {
		t.Errorf("pickVoice() = %q, want empty", got)
	}
}
