// Package jsonedit patches single values into JSON documents that may
// contain comments and trailing commas. Everything outside the patched span
// is preserved byte for byte, which keeps comments, key order and formatting
// of hand-edited settings files intact.
package jsonedit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// ParseError is returned when a document is not valid JSON-with-comments.
// The document on disk is never modified when parsing failed.
type ParseError struct {
	err error
}

// Error implements the error interface
func (e ParseError) Error() string {
	return fmt.Sprintf("invalid document: %v", e.err)
}

// Unwrap returns the parser diagnostic
func (e ParseError) Unwrap() error {
	return e.err
}

// ShapeError is returned when the document root or an intermediate key is
// not an object where one is required. The document on disk is never
// modified when the shape check failed.
type ShapeError struct {
	// KeyPath is the offending key path, empty for the document root
	KeyPath string
}

// Error implements the error interface
func (e ShapeError) Error() string {
	if e.KeyPath == "" {
		return "document root must be an object"
	}
	return fmt.Sprintf("%q must be an object", e.KeyPath)
}

// SetBool sets the boolean at keyPath, creating missing intermediate
// objects. A missing or blank document is treated as an empty object.
func SetBool(doc []byte, value bool, keyPath ...string) ([]byte, error) {
	raw := "false"
	if value {
		raw = "true"
	}
	return SetRaw(doc, raw, keyPath...)
}

// SetRaw splices the raw JSON value at keyPath into doc and returns the
// patched document. An existing leaf value is overwritten in place, a
// missing leaf is appended to the deepest existing object along keyPath.
func SetRaw(doc []byte, raw string, keyPath ...string) ([]byte, error) {
	if len(keyPath) == 0 {
		return nil, errors.New("empty key path")
	}
	if len(bytes.TrimSpace(doc)) == 0 {
		doc = []byte("{}")
	}

	// comments and trailing commas are blanked out with spaces, so every
	// index into stripped is valid for doc as well
	stripped := jsonc.ToJSON(doc)
	if err := validate(stripped); err != nil {
		return nil, ParseError{err: err}
	}
	if !gjson.ParseBytes(stripped).IsObject() {
		return nil, ShapeError{}
	}

	// walk from the root and stop at the deepest existing object
	depth := 0
	for depth < len(keyPath)-1 {
		res := gjson.GetBytes(stripped, queryPath(keyPath[:depth+1]))
		if !res.Exists() {
			break
		}
		if !res.IsObject() {
			return nil, ShapeError{KeyPath: strings.Join(keyPath[:depth+1], ".")}
		}
		depth++
	}

	if depth == len(keyPath)-1 {
		if leaf := gjson.GetBytes(stripped, queryPath(keyPath)); leaf.Exists() && leaf.Index > 0 {
			// overwrite only the value, comments and position stay intact
			return splice(doc, leaf.Index, leaf.Index+len(leaf.Raw), raw), nil
		}
	}

	// append the missing tail as one nested member of the deepest existing
	// object
	member, err := buildMember(keyPath[depth:], raw)
	if err != nil {
		return nil, err
	}

	objStart, objEnd := objectSpan(stripped, queryPath(keyPath[:depth]))
	if objStart < 0 {
		return nil, ShapeError{KeyPath: strings.Join(keyPath[:depth], ".")}
	}
	return insertMember(doc, stripped, objStart, objEnd, member), nil
}

// PatchFile patches the document at path on disk, creating the file and its
// parent directories when missing. The file is only written when patching
// succeeded: parse and shape failures leave it untouched.
func PatchFile(path string, value bool, keyPath ...string) error {
	doc, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "unable to read %s", path)
	}
	fresh := len(bytes.TrimSpace(doc)) == 0

	patched, err := SetBool(doc, value, keyPath...)
	if err != nil {
		return errors.Wrapf(err, "unable to patch %s", path)
	}
	if fresh {
		// a document created from scratch is compact, write it out indented
		patched = pretty.PrettyOptions(patched, &pretty.Options{Indent: "  "})
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "unable to create %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, patched, 0644); err != nil {
		return errors.Wrapf(err, "unable to write %s", path)
	}
	return nil
}

func validate(stripped []byte) error {
	if gjson.ValidBytes(stripped) {
		return nil
	}
	var v interface{}
	if err := json.Unmarshal(stripped, &v); err != nil {
		return err
	}
	return errors.New("malformed JSON document")
}

// queryPath builds a gjson/sjson path from literal key segments
func queryPath(keys []string) string {
	escaper := strings.NewReplacer(`\`, `\\`, `.`, `\.`, `*`, `\*`, `?`, `\?`)
	escaped := make([]string, len(keys))
	for i, k := range keys {
		escaped[i] = escaper.Replace(k)
	}
	return strings.Join(escaped, ".")
}

// buildMember renders the missing keyPath tail as a single object member,
// e.g. `"auto_install_extensions":{"wakatime":true}`
func buildMember(keys []string, raw string) (string, error) {
	obj, err := sjson.SetRaw("{}", queryPath(keys), raw)
	if err != nil {
		return "", err
	}
	obj = strings.TrimSpace(obj)
	return strings.TrimSpace(obj[1 : len(obj)-1]), nil
}

// objectSpan returns the byte range [start, end] of the object at path,
// where end is the index of its closing brace. An empty path addresses the
// document root.
func objectSpan(stripped []byte, path string) (int, int) {
	if path == "" {
		return bytes.IndexByte(stripped, '{'), bytes.LastIndexByte(stripped, '}')
	}
	res := gjson.GetBytes(stripped, path)
	if !res.Exists() || res.Index <= 0 {
		return -1, -1
	}
	return res.Index, res.Index + len(res.Raw) - 1
}

// insertMember splices a new member into the object spanning
// [objStart, objEnd]. The scan for the insertion point runs over stripped,
// where comments are already blanked, the splice itself runs over doc.
func insertMember(doc, stripped []byte, objStart, objEnd int, member string) []byte {
	last := objEnd - 1
	for last > objStart && isSpace(stripped[last]) {
		last--
	}

	if last == objStart {
		// empty object
		return splice(doc, objStart+1, objStart+1, member)
	}

	sep := ","
	if stripped[last] == ',' {
		sep = ""
	}
	at := last + 1
	if bytes.ContainsRune(doc[objStart:objEnd], '\n') {
		indent := memberIndent(doc, stripped, objStart, objEnd)
		return splice(doc, at, at, sep+"\n"+indent+member)
	}
	return splice(doc, at, at, sep+" "+member)
}

// memberIndent returns the leading whitespace of the line holding the
// object's first member, so an inserted member lines up with the existing
// ones. Objects whose first member shares a line with the opening brace get
// two spaces.
func memberIndent(doc, stripped []byte, objStart, objEnd int) string {
	tok := objStart + 1
	for tok < objEnd && isSpace(stripped[tok]) {
		tok++
	}
	if tok >= objEnd {
		return "  "
	}

	lineStart := bytes.LastIndexByte(doc[:tok], '\n') + 1
	for _, b := range doc[lineStart:tok] {
		if b != ' ' && b != '\t' {
			return "  "
		}
	}
	return string(doc[lineStart:tok])
}

func splice(doc []byte, start, end int, insert string) []byte {
	out := make([]byte, 0, len(doc)-(end-start)+len(insert))
	out = append(out, doc[:start]...)
	out = append(out, insert...)
	out = append(out, doc[end:]...)
	return out
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
