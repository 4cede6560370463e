// Package chunker splits files exceeding the archive's single-file size
// limit into fixed-size chunks for transport, and reassembles them.
package chunker

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const (
	// DefaultChunkSize is the fixed block size written per chunk.
	DefaultChunkSize int64 = 5 * 1024 * 1024
	// DefaultSizeThreshold is the archive's single-file limit (2.5 GiB).
	DefaultSizeThreshold int64 = 2.5 * 1024 * 1024 * 1024
)

var chunkNamePattern = regexp.MustCompile(`^(.+)_chunk(\d+)(\.[^.]*(?:\.gz)?)?$`)

// Result reports the outcome of a split or merge operation. When a split
// succeeds the checksum map has exactly one entry per chunk path.
type Result struct {
	Success   bool              `json:"success"`
	Chunks    []string          `json:"chunks"`
	Checksums map[string]string `json:"checksums"`
	Errors    []string          `json:"errors"`
	Warnings  []string          `json:"warnings"`
}

func failed(errs ...string) Result {
	return Result{Success: false, Errors: errs, Checksums: map[string]string{}}
}

// Handler performs threshold-gated splitting with per-chunk integrity
// verification. The zero value is not usable; call NewHandler.
type Handler struct {
	ChunkSize int64
	Threshold int64
}

func NewHandler() *Handler {
	return &Handler{ChunkSize: DefaultChunkSize, Threshold: DefaultSizeThreshold}
}

// NewHandlerWithThreshold overrides the size threshold, e.g. from the
// settings file's GiB limit.
func NewHandlerWithThreshold(threshold int64) *Handler {
	h := NewHandler()
	if threshold > 0 {
		h.Threshold = threshold
	}
	return h
}

// NeedsSplitting reports whether the file exists and exceeds the
// threshold. A file of exactly the threshold size is not split.
func (h *Handler) NeedsSplitting(filePath string) bool {
	info, err := os.Stat(filePath)
	return err == nil && info.Size() > h.Threshold
}

// Split reads the file sequentially in fixed-size blocks and writes each
// block as a chunk file named <stem>_chunk<N><suffix> under outputDir,
// preserving read order as chunk order. Every chunk's SHA-256 is recorded
// at write time and verified with a fresh read-back before the split is
// declared successful. On verification failure the partial chunks are
// left on disk and the result is marked unsuccessful.
func (h *Handler) Split(filePath, outputDir string) Result {
	info, err := os.Stat(filePath)
	if err != nil {
		return failed(fmt.Sprintf("File not found: %s", filePath))
	}
	if info.Size() <= h.Threshold {
		res := failed()
		res.Warnings = append(res.Warnings, fmt.Sprintf("File under size limit, splitting not needed: %s", filePath))
		return res
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return failed(fmt.Sprintf("Error creating output directory: %v", err))
	}

	f, err := os.Open(filePath)
	if err != nil {
		return failed(fmt.Sprintf("Error opening file: %v", err))
	}
	defer f.Close()

	base := filepath.Base(filePath)
	suffix := filepath.Ext(base)
	// Compressed NIfTI keeps its full .nii.gz suffix on every chunk.
	if strings.HasSuffix(strings.ToLower(base), ".nii.gz") {
		suffix = base[len(base)-len(".nii.gz"):]
	}
	stem := base[:len(base)-len(suffix)]

	result := Result{Checksums: map[string]string{}}
	buf := make([]byte, h.ChunkSize)

	for chunkNum := 0; ; chunkNum++ {
		n, readErr := io.ReadFull(f, buf)
		if n > 0 {
			chunkPath := filepath.Join(outputDir, fmt.Sprintf("%s_chunk%d%s", stem, chunkNum, suffix))
			if err := os.WriteFile(chunkPath, buf[:n], 0644); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("Error writing chunk %d: %v", chunkNum, err))
				return result
			}
			sum := sha256.Sum256(buf[:n])
			result.Chunks = append(result.Chunks, chunkPath)
			result.Checksums[chunkPath] = hex.EncodeToString(sum[:])
		}
		if readErr == io.EOF || readErr == io.ErrUnexpectedEOF {
			break
		}
		if readErr != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Error reading file: %v", readErr))
			return result
		}
	}

	// Re-read every chunk from disk and recompute its hash. Catches
	// silent write corruption before the chunks are handed to the
	// transfer tool.
	for _, chunkPath := range result.Chunks {
		sum, err := hashFile(chunkPath)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Error verifying chunk %s: %v", chunkPath, err))
			continue
		}
		if sum != result.Checksums[chunkPath] {
			result.Errors = append(result.Errors, fmt.Sprintf("Chunk checksum mismatch: %s", chunkPath))
		}
	}

	result.Success = len(result.Errors) == 0
	return result
}

// Merge discovers chunk files under chunkDir, orders them numerically by
// their embedded sequence number and concatenates them into outputPath.
// Files whose names do not match the chunk pattern are ignored. An empty
// chunk set is a failure, not a silent empty output file.
func (h *Handler) Merge(chunkDir, outputPath string) Result {
	entries, err := os.ReadDir(chunkDir)
	if err != nil {
		return failed(fmt.Sprintf("Error reading chunk directory: %v", err))
	}

	type chunk struct {
		num  int
		path string
	}
	var chunks []chunk
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := chunkNamePattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		num, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		chunks = append(chunks, chunk{num, filepath.Join(chunkDir, e.Name())})
	}
	if len(chunks) == 0 {
		return failed(fmt.Sprintf("No chunk files found in: %s", chunkDir))
	}

	// Numeric ordering: chunk10 must come after chunk2, which a
	// lexicographic sort would get wrong.
	sort.Slice(chunks, func(i, j int) bool { return chunks[i].num < chunks[j].num })

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return failed(fmt.Sprintf("Error creating output directory: %v", err))
	}
	out, err := os.Create(outputPath)
	if err != nil {
		return failed(fmt.Sprintf("Error creating output file: %v", err))
	}
	defer out.Close()

	result := Result{Checksums: map[string]string{}}
	for _, c := range chunks {
		in, err := os.Open(c.path)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Error opening chunk %s: %v", c.path, err))
			return result
		}

		hash := sha256.New()
		if _, err := io.Copy(io.MultiWriter(out, hash), in); err != nil {
			in.Close()
			result.Errors = append(result.Errors, fmt.Sprintf("Error copying chunk %s: %v", c.path, err))
			return result
		}
		in.Close()

		result.Chunks = append(result.Chunks, c.path)
		result.Checksums[c.path] = hex.EncodeToString(hash.Sum(nil))
	}

	result.Success = true
	return result
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}
