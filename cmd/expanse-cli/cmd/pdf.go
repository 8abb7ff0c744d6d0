package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dixieflatline76/Expanse/pkg/pdf"
	"github.com/spf13/cobra"
)

var (
	pageSize  string
	landscape bool
	pdfOut    string
)

var pdfCmd = &cobra.Command{
	Use:   "pdf",
	Short: "PDF tools",
}

var pdfCreateCmd = &cobra.Command{
	Use:   "create <image...>",
	Short: "Combine images into a PDF, one page per image",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		size, err := pdf.ParsePageSize(pageSize)
		if err != nil {
			return err
		}
		out := pdfOut
		if out == "" {
			out = "images.pdf"
		}
		if err := pdf.CreateFromImages(args, out, pdf.Layout{Size: size, Landscape: landscape}); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%d pages)\n", out, len(args))
		return nil
	},
}

var pdfCompressCmd = &cobra.Command{
	Use:   "compress <file.pdf>",
	Short: "Optimize a PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := pdfOut
		if out == "" {
			out = siblingPath(args[0], "-compressed.pdf")
		}
		res, err := pdf.Compress(args[0], out)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s: %d -> %d bytes (%.1f%% smaller)\n", out, res.Before, res.After, res.Saved()*100)
		return nil
	},
}

var pdfExtractCmd = &cobra.Command{
	Use:   "extract <file.pdf>",
	Short: "Extract embedded images from a PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := pdfOut
		if dir == "" {
			dir = siblingPath(args[0], "-images")
		}
		files, err := pdf.ExtractImages(args[0], dir)
		if err != nil {
			return err
		}
		for _, f := range files {
			logf("%s", f)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Extracted %d images to %s\n", len(files), dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pdfCmd)
	pdfCmd.AddCommand(pdfCreateCmd, pdfCompressCmd, pdfExtractCmd)

	pdfCmd.PersistentFlags().StringVarP(&pdfOut, "output", "o", "", "output file, or directory for extract")
	pdfCreateCmd.Flags().StringVar(&pageSize, "size", string(pdf.Original), "page size: original, A4, Letter")
	pdfCreateCmd.Flags().BoolVar(&landscape, "landscape", false, "landscape pages")
}

// siblingPath swaps the extension of path for suffix, keeping the directory.
func siblingPath(path, suffix string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + suffix
}
