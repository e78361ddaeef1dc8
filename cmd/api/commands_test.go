package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"go-proposalpdf/internal/layout"
	"go-proposalpdf/internal/pdf/pdftest"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCommand(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "none.yaml"), "--log-level", "error"))
	err := root.Execute()
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	imagePath := filepath.Join(dir, "produto.png")
	require.NoError(t, os.WriteFile(imagePath, pdftest.PNG(40, 80), 0600))
	output := filepath.Join(dir, "out.pdf")

	out, err := run(t, "render",
		"--template", pdftest.WriteTemplate(t),
		"--set", "client=Padaria Central",
		"--set", "items=Caixa,Sacola",
		"--set", "values=10,20",
		"--set", "total=30",
		"--image", imagePath,
		"--output", output,
	)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+output)

	doc, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF-")))
}

func TestRenderCommandRejectsUnknownField(t *testing.T) {
	_, err := run(t, "render", "--template", pdftest.WriteTemplate(t), "--set", "color=blue")
	assert.ErrorContains(t, err, "unknown field")

	_, err = run(t, "render", "--template", pdftest.WriteTemplate(t), "--set", "client")
	assert.ErrorContains(t, err, "expected key=value")
}

func TestLayoutCommand(t *testing.T) {
	out, err := run(t, "layout", "--layout", filepath.Join("..", "..", "layouts", "compacta.yaml"))
	require.NoError(t, err)

	var l layout.Layout
	require.NoError(t, yaml.Unmarshal([]byte(out), &l))
	assert.Equal(t, "compacta", l.Name)
	assert.NotEmpty(t, l.Fields)
}

func TestLayoutCommandDefault(t *testing.T) {
	out, err := run(t, "layout")
	require.NoError(t, err)

	var l layout.Layout
	require.NoError(t, yaml.Unmarshal([]byte(out), &l))
	assert.Equal(t, *layout.Default(), l)
}

func TestParseSets(t *testing.T) {
	values, err := parseSets([]string{"client=Loja", "total= 1.250,00 ", "leadTime=a=b"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"client": "Loja", "total": " 1.250,00 ", "leadTime": "a=b"}, values)

	_, err = parseSets([]string{"image=foto.png"})
	assert.Error(t, err)
}
