package cmd

import (
	"archive/zip"
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/dixieflatline76/Expanse/pkg/expand"
	"github.com/dixieflatline76/Expanse/pkg/media"
	"github.com/dixieflatline76/Expanse/pkg/pdf"
	"github.com/dixieflatline76/Expanse/pkg/studio"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag to its default so tests do not leak into each other.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, buf.Bytes(), 0644))
	return p
}

func TestResize(t *testing.T) {
	dir := t.TempDir()
	src := writePNG(t, dir, "a.png", 40, 20)

	out, err := execute(t, "resize", src, "--width", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "a-resized.png")

	img, f, err := media.DecodeFile(filepath.Join(dir, "a-resized.png"))
	require.NoError(t, err)
	assert.Equal(t, media.PNG, f)
	assert.Equal(t, image.Pt(20, 10), img.Bounds().Size())
}

func TestResizeNeedsASide(t *testing.T) {
	src := writePNG(t, t.TempDir(), "a.png", 4, 4)
	_, err := execute(t, "resize", src)
	assert.EqualError(t, err, "set --width or --height")
}

func TestConvertWithZip(t *testing.T) {
	dir := t.TempDir()
	a := writePNG(t, dir, "a.png", 8, 8)
	b := writePNG(t, dir, "b.png", 8, 8)
	outDir := filepath.Join(dir, "out")
	archive := filepath.Join(dir, "all.zip")

	out, err := execute(t, "convert", a, b, "--format", "jpg", "--out-dir", outDir, "--zip", archive)
	require.NoError(t, err)
	assert.Contains(t, out, "Archived 2 files")

	for _, name := range []string{"a-converted.jpg", "b-converted.jpg"} {
		_, f, err := media.DecodeFile(filepath.Join(outDir, name))
		require.NoError(t, err, name)
		assert.Equal(t, media.JPEG, f)
	}

	zr, err := zip.OpenReader(archive)
	require.NoError(t, err)
	defer zr.Close()
	assert.Len(t, zr.File, 2)
}

func TestConvertRejectsReadOnlyFormat(t *testing.T) {
	src := writePNG(t, t.TempDir(), "a.png", 4, 4)
	_, err := execute(t, "convert", src, "--format", "webp")
	assert.Error(t, err)
}

func TestBatchReportsFailures(t *testing.T) {
	dir := t.TempDir()
	good := writePNG(t, dir, "good.png", 4, 4)
	bad := filepath.Join(dir, "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0644))

	out, err := execute(t, "filter", good, bad, "--name", media.FilterNames()[0])
	assert.EqualError(t, err, "1 of 2 files failed")
	assert.Contains(t, out, "bad.png")
	assert.Contains(t, out, "Saved")
}

func TestWatermarkFlags(t *testing.T) {
	dir := t.TempDir()
	src := writePNG(t, dir, "a.png", 64, 64)

	_, err := execute(t, "watermark", src, "--position", "middle")
	assert.Error(t, err)

	_, err = execute(t, "watermark", src, "--color", "nope")
	assert.Error(t, err)

	_, err = execute(t, "watermark", src, "--logo", filepath.Join(dir, "missing.png"))
	assert.Error(t, err)

	logo := writePNG(t, dir, "logo.png", 8, 8)
	out, err := execute(t, "watermark", src, "--logo", logo, "--position", "top-left")
	require.NoError(t, err)
	assert.Contains(t, out, "a-watermarked.png")
}

func TestPDFCreateAndCount(t *testing.T) {
	dir := t.TempDir()
	a := writePNG(t, dir, "a.png", 30, 20)
	b := writePNG(t, dir, "b.png", 20, 30)
	out := filepath.Join(dir, "doc.pdf")

	_, err := execute(t, "pdf", "create", a, b, "-o", out)
	require.NoError(t, err)

	n, err := pdf.PageCount(out)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = execute(t, "pdf", "create", a, "--size", "A5")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "Expanse dev\n", out)
}

func TestEditRejectsModes(t *testing.T) {
	_, err := execute(t, "edit", "teleport")
	assert.EqualError(t, err, `unknown mode "teleport"`)

	_, err = execute(t, "edit", "expand", "a.png")
	assert.EqualError(t, err, "use the expand command")
}

func TestParseSelection(t *testing.T) {
	sel, err := parseSelection("10, 20,30,40")
	require.NoError(t, err)
	assert.Equal(t, studio.Selection{X: 10, Y: 20, Width: 30, Height: 40}, sel)

	_, err = parseSelection("1,2,3")
	assert.Error(t, err)
	_, err = parseSelection("1,2,x,4")
	assert.Error(t, err)
}

func TestExpansionFor(t *testing.T) {
	d, ok := expansionFor(expand.NewSize(400, 300), expand.Padding{Left: 50, Top: 10, Right: 30})
	require.True(t, ok)
	assert.Equal(t, expand.ExpansionData{
		NewWidth: 480, NewHeight: 310,
		ImageX: 50, ImageY: 10,
		ImageWidth: 400, ImageHeight: 300,
	}, d)
	assert.True(t, d.HasExpansion())
}

func TestCheckPadding(t *testing.T) {
	assert.NoError(t, checkPadding(expand.Padding{Top: 10, Left: 0}))
	assert.EqualError(t, checkPadding(expand.Padding{Left: -40}), "--left must not be negative, got -40")
}

func TestExpandRejectsNegativePadding(t *testing.T) {
	img := writePNG(t, t.TempDir(), "cat.png", 40, 20)
	_, err := execute(t, "expand", img, "--left=-5")
	assert.EqualError(t, err, "--left must not be negative, got -5")
}

func TestBatchOutputPath(t *testing.T) {
	resetFlags(rootCmd)
	out := media.Output{Name: filepath.Join("in", "cat.png")}
	assert.Equal(t, filepath.Join("in", "cat-resized.png"), batchOutputPath(out, "resized"))

	outDir = "out"
	defer func() { outDir = "" }()
	assert.Equal(t, filepath.Join("out", "cat-resized.png"), batchOutputPath(out, "resized"))
}

func TestResultPath(t *testing.T) {
	resetFlags(rootCmd)
	res := &studio.Result{Mode: studio.ModeSharpen, MIMEType: "image/png"}
	assert.Equal(t, filepath.Join("shots", "cat-sharpen.png"), resultPath(res, filepath.Join("shots", "cat.jpg")))
	assert.Equal(t, "sharpen.png", resultPath(res, ""))

	outputPath = "x.png"
	defer func() { outputPath = "" }()
	assert.Equal(t, "x.png", resultPath(res, "cat.jpg"))
}

func TestSiblingPath(t *testing.T) {
	assert.Equal(t, filepath.Join("docs", "a-compressed.pdf"), siblingPath(filepath.Join("docs", "a.pdf"), "-compressed.pdf"))
}
