package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// newBufferLogger returns a secure text logger writing into buf at debug
// level.
func newBufferLogger(buf *bytes.Buffer) *slog.Logger {
	return NewSecureLogger(buf, true)
}

// TestSensitiveKeysAreMasked tests that credential-bearing keys are always
// redacted.
func TestSensitiveKeysAreMasked(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{"password key", "password", "hunter2"},
		{"hash key", "hash", "nothexbutstillsecret"},
		{"raw line key", "line", "user@example.com:hunter2"},
		{"misc key", "misc", "security answer: blue"},
		{"compound key", "record_password", "hunter2"},
		{"uppercase key", "PASSWORD", "hunter2"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			newBufferLogger(&buf).Info("test", tc.key, tc.value)

			out := buf.String()
			if strings.Contains(out, tc.value) {
				t.Errorf("output %q leaked value %q", out, tc.value)
			}
			if !strings.Contains(out, MaskValue) {
				t.Errorf("output %q missing mask", out)
			}
		})
	}
}

// TestSensitiveValuesAreMasked tests pattern-based masking under harmless
// keys.
func TestSensitiveValuesAreMasked(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		value string
	}{
		{"md5 digest", "5f4dcc3b5aa765d61d8327deb882cf99"},
		{"sha256 digest", "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"},
		{"bcrypt", "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"},
		{"dump line", "user@example.com:hunter2"},
		{"padded base64", "QWxhZGRpbjpvcGVuIHNlc2FtZQ=="},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			newBufferLogger(&buf).Info("test", "detail", tc.value)

			if out := buf.String(); strings.Contains(out, tc.value) {
				t.Errorf("output %q leaked value %q", out, tc.value)
			}
		})
	}
}

// TestHarmlessAttributesPreserved tests that ordinary operational values
// pass through untouched.
func TestHarmlessAttributesPreserved(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{"file name", "file", "combo_2021.txt"},
		{"identifier", "id", "moc.elpmaxe|AAAAAAAABBBBBBBB"},
		{"domain", "domain", "example.com"},
		{"count", "records", "1542"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			newBufferLogger(&buf).Info("test", tc.key, tc.value)

			if out := buf.String(); !strings.Contains(out, tc.value) {
				t.Errorf("output %q lost harmless value %q", out, tc.value)
			}
		})
	}
}

// TestGroupAttributesSanitized tests recursive sanitization inside groups.
func TestGroupAttributesSanitized(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	newBufferLogger(&buf).Info("test",
		slog.Group("record",
			slog.String("password", "hunter2"),
			slog.String("file", "combo.txt"),
		),
	)

	out := buf.String()
	if strings.Contains(out, "hunter2") {
		t.Errorf("output %q leaked grouped password", out)
	}
	if !strings.Contains(out, "combo.txt") {
		t.Errorf("output %q lost harmless grouped value", out)
	}
}

// TestVerboseControlsLevel tests the level switch in the constructors.
func TestVerboseControlsLevel(t *testing.T) {
	t.Parallel()

	var quiet bytes.Buffer
	NewSecureLogger(&quiet, false).Info("hidden")
	if quiet.Len() != 0 {
		t.Errorf("non-verbose logger emitted info output: %q", quiet.String())
	}

	var loud bytes.Buffer
	NewSecureLogger(&loud, true).Debug("visible")
	if loud.Len() == 0 {
		t.Error("verbose logger suppressed debug output")
	}
}
