package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinmclean/stepcurve"
	"github.com/calvinmclean/stepcurve/controller"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "missing.toml")}, args...))

	err := cmd.Execute()
	return stdout.String(), err
}

func TestGenerate(t *testing.T) {
	t.Run("Stdout", func(t *testing.T) {
		out, err := execute(t, "generate",
			"--points", "10", "--start", "90", "--end", "9",
			"--lead-in", "0", "--lead-out", "0", "--name", "Ramp",
		)
		require.NoError(t, err)
		assert.Equal(t, "int Ramp[10] = {\n90,81,72,63,54,45,36,27,18,9\n};\n", out)
	})

	t.Run("File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "curve.h")
		out, err := execute(t, "generate", "--out", path)
		require.NoError(t, err)
		assert.Empty(t, out)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "int GeneratedCurve[98] = {\n93,")
	})

	t.Run("UnknownKind", func(t *testing.T) {
		_, err := execute(t, "generate", "--kind", "zigzag")
		require.ErrorIs(t, err, stepcurve.ErrInvalidSpec)
	})

	t.Run("InvalidSpec", func(t *testing.T) {
		_, err := execute(t, "generate", "--points", "5")
		require.ErrorIs(t, err, stepcurve.ErrInvalidSpec)
	})

	t.Run("ConfigFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "stepcurve.toml")
		require.NoError(t, os.WriteFile(path, []byte(`
[curve]
kind = "SCurve"
point_count = 12
start_value = 50
end_value = 50
lead_in_size = 0
lead_out_size = 0

[export]
array_name = "Flat"
`), 0o644))

		var stdout, stderr bytes.Buffer
		cmd := newRootCmd(&stdout, &stderr)
		cmd.SetArgs([]string{"--config", path, "generate"})
		require.NoError(t, cmd.Execute())
		assert.Equal(t, "int Flat[12] = {\n50,50,50,50,50,50,50,50,50,50,\n50,50\n};\n", stdout.String())
	})
}

func TestUpload(t *testing.T) {
	t.Run("MissingFile", func(t *testing.T) {
		_, err := execute(t, "upload", filepath.Join(t.TempDir(), "nope.h"))
		require.Error(t, err)
	})

	t.Run("MalformedFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.h")
		require.NoError(t, os.WriteFile(path, []byte("no array here"), 0o644))

		_, err := execute(t, "upload", path)
		require.ErrorIs(t, err, stepcurve.ErrMalformedInput)
	})

	t.Run("NoPort", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ok.h")
		require.NoError(t, os.WriteFile(path, []byte("int A[2] = {10, 20};"), 0o644))

		_, err := execute(t, "upload", "--port", controller.SerialPortNone, path)
		require.ErrorIs(t, err, controller.ErrNoPort)
	})

	t.Run("BadRun", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ok.h")
		require.NoError(t, os.WriteFile(path, []byte("int A[2] = {10, 20};"), 0o644))

		_, err := execute(t, "upload", "--run", "sideways", path)
		require.Error(t, err)
	})
}

func TestParseRunDirection(t *testing.T) {
	tests := []struct {
		in       string
		expected stepcurve.Direction
	}{
		{"", 0},
		{"forward", stepcurve.DirectionNext},
		{"+", stepcurve.DirectionNext},
		{"reverse", stepcurve.DirectionPrev},
		{"rev", stepcurve.DirectionPrev},
	}
	for _, tt := range tests {
		dir, err := parseRunDirection(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, dir)
	}
}
