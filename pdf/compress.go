package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Request describes a single Ghostscript run.
type Request struct {
	InputPath  string
	OutputPath string
	Profile    Profile
}

// Compressor shrinks PDF files by running Ghostscript with the pdfwrite device.
type Compressor struct {
	binary  string
	timeout time.Duration
	logger  *zap.Logger
}

// NewCompressor creates a Compressor for the given Ghostscript executable.
// A non-positive timeout falls back to DefaultCLITimeout.
func NewCompressor(binary string, timeout time.Duration, logger *zap.Logger) *Compressor {
	if timeout <= 0 {
		timeout = DefaultCLITimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Compressor{
		binary:  binary,
		timeout: timeout,
		logger:  logger,
	}
}

// Compress runs Ghostscript over req.InputPath and writes req.OutputPath.
// It blocks until the process exits, the timeout elapses or ctx is cancelled.
// The output file is not inspected.
func (c *Compressor) Compress(ctx context.Context, req Request) error {
	args := compressArgs(req)
	start := time.Now()

	output, err := execCommandWithTimeout(ctx, c.timeout, c.binary, args...)
	if err != nil {
		c.logger.Warn("ghostscript run failed",
			zap.String("input", req.InputPath),
			zap.String("profile", string(req.Profile)),
			zap.Duration("elapsed", time.Since(start)),
			zap.ByteString("output", output),
			zap.Error(err))
		if isKilled(err) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrConversionFailed, err)
	}

	c.logger.Debug("ghostscript run finished",
		zap.String("input", req.InputPath),
		zap.String("output", req.OutputPath),
		zap.String("profile", string(req.Profile)),
		zap.Duration("elapsed", time.Since(start)))

	return nil
}

// Version returns the version string reported by the Ghostscript binary.
func (c *Compressor) Version(ctx context.Context) (string, error) {
	output, err := execCommandWithTimeout(ctx, VersionTimeout, c.binary, "--version")
	if err != nil {
		return "", fmt.Errorf("%s --version: %w", c.binary, err)
	}
	return strings.TrimSpace(string(output)), nil
}

func compressArgs(req Request) []string {
	return []string{
		"-sDEVICE=pdfwrite",
		"-dCompatibilityLevel=1.4",
		"-dPDFSETTINGS=/" + string(req.Profile),
		"-dNOPAUSE",
		"-dQUIET",
		"-dBATCH",
		"-sOutputFile=" + req.OutputPath,
		req.InputPath,
	}
}
