package proj2gpt

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/afero"

	"github.com/frontcamp/proj2gpt/internal/logger"
)

// Placeholder bodies for files that cannot be packed verbatim. They appear
// inside the container in place of the file content; none of them aborts
// the build.
const (
	PlaceholderEmpty  = `[## NOTE: EMPTY FILE ##]`
	PlaceholderIO     = `[## ERROR: FILE CANNOT BE READ DUE TO I/O ERROR! ##]`
	PlaceholderDecode = `[## ERROR: FILE CANNOT BE READ DUE TO UNICODE DECODING ERROR! ##]`
)

// MaskedExt is the extension of a masked sibling file. When secrets
// masking is enabled and "<file>.gpt" exists, its content is packed in
// place of the original. The default deny patterns exclude "*.gpt" so the
// masked files themselves are never packed as frames.
const MaskedExt = ".gpt"

// FingerprintLen is the length of a frame fingerprint: the first 10 hex
// characters of the SHA-256 digest of the normalized body.
const FingerprintLen = 10

// Frame is the self-describing serialized form of one source file inside a
// container: a header line, the normalized body (or a placeholder line)
// and a footer line. Frames are immutable once built.
type Frame struct {
	Path        string // root-anchored logical path
	Body        string // rendered body, always newline terminated
	Fingerprint string // content fingerprint, see FingerprintLen
	Size        int    // header + body + footer in UTF-8 bytes
}

// Header returns the frame's opening line, including its newline.
func (fr *Frame) Header() string {
	return fmt.Sprintf("[## BEGIN FILE: %q ##]\n", fr.Path)
}

// Footer returns the frame's closing line, including its newline.
func (fr *Frame) Footer() string {
	return fmt.Sprintf("[## END FILE: %q ##]\n", fr.Path)
}

// Render returns the complete frame text. len(Render()) == Size.
func (fr *Frame) Render() string {
	return fr.Header() + fr.Body + fr.Footer()
}

// buildFrame turns one source file into a frame. Read and decode failures
// degrade into placeholder frames instead of failing the build.
func (e *Engine) buildFrame(src SourceFile) *Frame {
	raw, err := e.readSource(src)
	if err != nil {
		logger.Warn("packing placeholder for %s: %v", src.Rel, err)
		return placeholderFrame(src.Rel, PlaceholderIO)
	}
	if !utf8.Valid(raw) {
		logger.Warn("packing placeholder for %s: not valid UTF-8", src.Rel)
		return placeholderFrame(src.Rel, PlaceholderDecode)
	}
	if len(raw) == 0 {
		fr := placeholderFrame(src.Rel, PlaceholderEmpty)
		// Empty files fingerprint the empty content itself, so an
		// emptied file and a file that always was empty agree.
		fr.Fingerprint = fingerprint(nil)
		return fr
	}

	body := normalizeNewlines(string(raw))
	fr := &Frame{
		Path:        src.Rel,
		Fingerprint: fingerprint([]byte(body)),
	}
	if !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	fr.Body = body
	fr.Size = len(fr.Header()) + len(fr.Body) + len(fr.Footer())
	return fr
}

// readSource reads the file's bytes, preferring the masked sibling when
// secrets masking is enabled.
func (e *Engine) readSource(src SourceFile) ([]byte, error) {
	if e.cfg.MaskSecrets {
		masked := src.Path + MaskedExt
		if ok, _ := afero.Exists(e.fs, masked); ok {
			return afero.ReadFile(e.fs, masked)
		}
	}
	return afero.ReadFile(e.fs, src.Path)
}

// placeholderFrame builds a frame whose body is one placeholder line.
// The placeholder text is fingerprinted like any other body.
func placeholderFrame(rel, placeholder string) *Frame {
	fr := &Frame{
		Path:        rel,
		Body:        placeholder + "\n",
		Fingerprint: fingerprint([]byte(placeholder)),
	}
	fr.Size = len(fr.Header()) + len(fr.Body) + len(fr.Footer())
	return fr
}

// fingerprint computes the content fingerprint of a normalized body.
func fingerprint(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])[:FingerprintLen]
}

// normalizeNewlines collapses CRLF and lone CR line endings to LF.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
