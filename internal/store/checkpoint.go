package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// CheckpointStore manages the three files behind one annotation run: the
// original input, the temporary checkpoint written after every item, and
// the final promoted artifact. The store is owned by a single run
// process; no concurrent writers exist by design.
type CheckpointStore struct {
	InputPath string
	TempPath  string
	FinalPath string

	log zerolog.Logger
}

// NewCheckpointStore creates a store over explicit paths
func NewCheckpointStore(inputPath, tempPath, finalPath string, log zerolog.Logger) *CheckpointStore {
	return &CheckpointStore{
		InputPath: inputPath,
		TempPath:  tempPath,
		FinalPath: finalPath,
		log:       log,
	}
}

// DerivedPaths names the temp and final files for an input and a stage
// suffix: input.csv -> input_<suffix>_temp.csv, input_<suffix>.csv
func DerivedPaths(inputPath, suffix string) (temp, final string) {
	base := strings.TrimSuffix(inputPath, ".csv")
	return base + "_" + suffix + "_temp.csv", base + "_" + suffix + ".csv"
}

// FinalExists reports whether the run already produced its final
// artifact; re-invocation is then a no-op for the whole file.
func (s *CheckpointStore) FinalExists() bool {
	_, err := os.Stat(s.FinalPath)
	return err == nil
}

// Open loads the working table, preferring the temporary checkpoint over
// the original input so an interrupted run resumes where it stopped.
// The second return value reports whether a checkpoint was resumed.
func (s *CheckpointStore) Open() (*Table, bool, error) {
	if _, err := os.Stat(s.TempPath); err == nil {
		t, err := Load(s.TempPath)
		if err != nil {
			return nil, false, fmt.Errorf("resume checkpoint %s: %w", s.TempPath, err)
		}
		s.log.Info().Str("checkpoint", s.TempPath).Msg("resuming from temporary checkpoint")
		return t, true, nil
	}

	t, err := Load(s.InputPath)
	if err != nil {
		return nil, false, fmt.Errorf("load input %s: %w", s.InputPath, err)
	}
	return t, false, nil
}

// Flush writes the temporary checkpoint. A write failure degrades to a
// fallback file in the working directory rather than losing the
// in-memory progress.
func (s *CheckpointStore) Flush(t *Table) error {
	err := t.Write(s.TempPath)
	if err == nil {
		return nil
	}
	s.log.Warn().Err(err).Str("path", s.TempPath).Msg("checkpoint write failed, using fallback")

	fallback := fallbackName(s.TempPath)
	if err := t.Write(fallback); err != nil {
		return fmt.Errorf("checkpoint fallback %s: %w", fallback, err)
	}
	s.log.Warn().Str("path", fallback).Msg("checkpoint saved to fallback file")
	return nil
}

// Promote writes the final artifact and removes the temporary checkpoint
func (s *CheckpointStore) Promote(t *Table) error {
	if err := t.Write(s.FinalPath); err != nil {
		s.log.Warn().Err(err).Str("path", s.FinalPath).Msg("final write failed, using fallback")
		fallback := fallbackName(s.FinalPath)
		if err := t.Write(fallback); err != nil {
			return fmt.Errorf("final fallback %s: %w", fallback, err)
		}
		s.log.Warn().Str("path", fallback).Msg("final output saved to fallback file")
	}

	if _, err := os.Stat(s.TempPath); err == nil {
		if err := os.Remove(s.TempPath); err != nil {
			s.log.Warn().Err(err).Str("path", s.TempPath).Msg("could not remove temporary checkpoint")
		}
	}
	return nil
}

func fallbackName(path string) string {
	return "fallback_" + filepath.Base(path)
}
