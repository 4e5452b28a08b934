package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"deck-converter/internal/domain"
	apperrors "deck-converter/pkg/errors"
)

// SofficeConverter shells out to the LibreOffice CLI for format
// conversions the PDF toolchain cannot do on its own (PPTX -> PDF and
// PDF -> PPTX). Every conversion runs inside its own temp directory
// with a dedicated user profile so concurrent requests don't fight
// over the soffice lock file.
type SofficeConverter struct {
	binary  string
	timeout time.Duration
	logger  domain.Logger
}

// NewSofficeConverter creates a converter. binary may be a bare name
// resolved via PATH or an absolute path (SOFFICE_PATH).
func NewSofficeConverter(binary string, timeout time.Duration, logger domain.Logger) *SofficeConverter {
	if binary == "" {
		binary = "soffice"
	}
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &SofficeConverter{
		binary:  binary,
		timeout: timeout,
		logger:  logger,
	}
}

// ToPDF converts an office document to PDF.
func (c *SofficeConverter) ToPDF(ctx context.Context, filename string, data []byte) ([]byte, error) {
	return c.convert(ctx, filename, data, "pdf")
}

// ToDeck converts a document (typically a PDF) to PPTX.
func (c *SofficeConverter) ToDeck(ctx context.Context, filename string, data []byte) ([]byte, error) {
	return c.convert(ctx, filename, data, "pptx")
}

func (c *SofficeConverter) convert(ctx context.Context, filename string, data []byte, target string) ([]byte, error) {
	workDir, err := os.MkdirTemp("", "deck-convert-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(workDir); rmErr != nil {
			c.logger.Warn("Failed to clean up conversion dir", "dir", workDir, "error", rmErr)
		}
	}()

	inputPath := filepath.Join(workDir, sanitizeBaseName(filename))
	if err := os.WriteFile(inputPath, data, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write input file: %w", err)
	}

	outDir := filepath.Join(workDir, "out")
	if err := os.Mkdir(outDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	profileDir := filepath.Join(workDir, "profile")
	cmd := exec.CommandContext(runCtx, c.binary,
		"--headless", "--norestore", "--nolockcheck",
		"-env:UserInstallation=file://"+profileDir,
		"--convert-to", target,
		"--outdir", outDir,
		inputPath,
	)
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err = cmd.Run()
	c.logger.Debug("soffice finished",
		"target", target, "duration_ms", time.Since(start).Milliseconds())

	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, apperrors.NewInternalError(
				fmt.Sprintf("the command %q was not found; verify the office suite is installed", c.binary),
				domain.ErrConverterNotFound,
			)
		}
		if runCtx.Err() == context.DeadlineExceeded {
			return nil, apperrors.NewConversionError(
				fmt.Sprintf("%s conversion timed out after %s", target, c.timeout),
				combinedOutput(stdout.String(), stderr.String()),
				err,
			)
		}
		return nil, apperrors.NewConversionError(
			fmt.Sprintf("%s conversion failed", target),
			combinedOutput(stdout.String(), stderr.String()),
			err,
		)
	}

	outPath, err := findConvertedFile(outDir, target)
	if err != nil {
		return nil, apperrors.NewConversionError(
			fmt.Sprintf("%s conversion produced no output", target),
			combinedOutput(stdout.String(), stderr.String()),
			err,
		)
	}

	converted, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read converted file: %w", err)
	}
	return converted, nil
}

// findConvertedFile locates the single produced file with the target
// extension. soffice derives the output name from the input base name,
// but the mapping is not always exact, so scan the directory.
func findConvertedFile(dir, target string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	want := "." + strings.ToLower(target)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), want) {
			return filepath.Join(dir, entry.Name()), nil
		}
	}
	return "", fmt.Errorf("no %s file in %s", want, dir)
}

// sanitizeBaseName strips path components and falls back to a neutral
// name so the input can always be written into the work dir.
func sanitizeBaseName(filename string) string {
	name := strings.TrimSpace(filepath.Base(filename))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "input"
	}
	return name
}

// combinedOutput merges captured stdout/stderr the way the conversion
// detail is surfaced to callers. Empty captures yield a hint about
// headless-mode configuration instead.
func combinedOutput(stdout, stderr string) string {
	var parts []string
	if s := strings.TrimSpace(stdout); s != "" {
		parts = append(parts, "stdout: "+s)
	}
	if s := strings.TrimSpace(stderr); s != "" {
		parts = append(parts, "stderr: "+s)
	}
	if len(parts) == 0 {
		return "no output captured (check if the office suite is fully configured for headless mode)"
	}
	return strings.Join(parts, "\n")
}
