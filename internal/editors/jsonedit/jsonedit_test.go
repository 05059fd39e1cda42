package jsonedit

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"
)

var keyPath = []string{"auto_install_extensions", "wakatime"}

// value reads a patched document the same way Zed would
func value(t *testing.T, doc []byte, path string) gjson.Result {
	stripped := jsonc.ToJSON(doc)
	require.True(t, gjson.ValidBytes(stripped), "patched document must stay valid: %s", doc)
	return gjson.GetBytes(stripped, path)
}

func TestSetBoolEmptyDocument(t *testing.T) {
	for _, doc := range []string{"", "   ", "\n\t\n"} {
		out, err := SetBool([]byte(doc), true, keyPath...)
		require.NoError(t, err)
		require.JSONEq(t, `{"auto_install_extensions":{"wakatime":true}}`, string(out))
	}
}

func TestSetBoolIdempotent(t *testing.T) {
	doc := []byte(`{
  "theme": "One Dark", // keep
  "auto_install_extensions": {
    "html": true
  }
}`)

	once, err := SetBool(doc, true, keyPath...)
	require.NoError(t, err)
	twice, err := SetBool(once, true, keyPath...)
	require.NoError(t, err)
	require.Equal(t, string(once), string(twice))
}

func TestSetBoolPreservesUnrelatedContent(t *testing.T) {
	doc := []byte("{ \"foo\": 1, // comment\n \"bar\": 2 }")

	out, err := SetBool(doc, true, keyPath...)
	require.NoError(t, err)

	require.Contains(t, string(out), "// comment")
	require.Equal(t, int64(1), value(t, out, "foo").Int())
	require.Equal(t, int64(2), value(t, out, "bar").Int())
	require.True(t, value(t, out, "auto_install_extensions.wakatime").Bool())
}

func TestSetBoolOverwritesLeafInPlace(t *testing.T) {
	doc := []byte(`{
  // extensions Zed installs on startup
  "auto_install_extensions": {
    "wakatime": false, // flipped manually
    "html": true
  }
}`)

	out, err := SetBool(doc, true, keyPath...)
	require.NoError(t, err)

	require.Contains(t, string(out), "// extensions Zed installs on startup")
	require.Contains(t, string(out), "// flipped manually")
	require.True(t, value(t, out, "auto_install_extensions.wakatime").Bool())
	require.True(t, value(t, out, "auto_install_extensions.html").Bool())
}

func TestSetBoolAppendsToExistingObject(t *testing.T) {
	doc := []byte(`{
  "auto_install_extensions": {
    "html": true
  }
}`)

	out, err := SetBool(doc, true, keyPath...)
	require.NoError(t, err)
	require.True(t, value(t, out, "auto_install_extensions.wakatime").Bool())
	require.True(t, value(t, out, "auto_install_extensions.html").Bool())
}

func TestSetBoolTrailingComma(t *testing.T) {
	doc := []byte(`{"theme": "One Dark",}`)

	out, err := SetBool(doc, true, keyPath...)
	require.NoError(t, err)
	require.Equal(t, "One Dark", value(t, out, "theme").String())
	require.True(t, value(t, out, "auto_install_extensions.wakatime").Bool())
}

func TestSetBoolShapeFailure(t *testing.T) {
	_, err := SetBool([]byte(`{"auto_install_extensions": 5}`), true, keyPath...)
	var shapeErr ShapeError
	require.True(t, errors.As(err, &shapeErr))
	require.Equal(t, "auto_install_extensions", shapeErr.KeyPath)

	// non-object root
	_, err = SetBool([]byte(`[1, 2]`), true, keyPath...)
	require.True(t, errors.As(err, &shapeErr))
	require.Empty(t, shapeErr.KeyPath)
}

func TestSetBoolParseFailure(t *testing.T) {
	_, err := SetBool([]byte(`{"foo": `), true, keyPath...)
	var parseErr ParseError
	require.True(t, errors.As(err, &parseErr))
}

func TestPatchFileCreatesFileAndParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zed", "settings.json")

	err := PatchFile(path, true, keyPath...)
	require.NoError(t, err)

	doc, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, value(t, doc, "auto_install_extensions.wakatime").Bool())
	// fresh documents are written indented
	require.Contains(t, string(doc), "\n")
}

func TestPatchFileKeepsFileOnParseFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	broken := []byte(`{"foo": `)
	require.NoError(t, os.WriteFile(path, broken, 0600))

	err := PatchFile(path, true, keyPath...)
	require.Error(t, err)
	var parseErr ParseError
	require.True(t, errors.As(err, &parseErr))

	onDisk, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	require.Equal(t, broken, onDisk)
}

func TestPatchFileKeepsFileOnShapeFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	doc := []byte(`{"auto_install_extensions": 5}`)
	require.NoError(t, os.WriteFile(path, doc, 0600))

	err := PatchFile(path, true, keyPath...)
	require.Error(t, err)
	var shapeErr ShapeError
	require.True(t, errors.As(err, &shapeErr))

	onDisk, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	require.Equal(t, doc, onDisk)
}
