// Package settings reads the run-level environment once at startup
// into an immutable struct, so the rest of the call graph receives
// configuration explicitly rather than re-reading the environment.
package settings

import (
	"os"
	"strconv"
	"time"
)

const (
	defaultRNGSeed          uint64 = 42
	defaultNumOfBuffers            = 80
	defaultDBMaxConns       int32  = 24
	defaultDBConnectTimeout        = 180 * time.Second
)

// Settings is the immutable run configuration read once from the
// environment.
type Settings struct {
	RNGSeed                uint64
	RecordReductionEnabled bool
	UploadAnonymizedFiles  bool
	AnonymizedBucket       string
	NumOfBuffers           int
	DBConnString           string
	DBMaxConns             int32
	DBConnectTimeout       time.Duration
}

// Load reads and validates every environment variable the core
// consumes. UPLOAD_ANONYMIZED_FILES=true without ANONYMIZED_BUCKET set
// is a fatal MissingEnv condition.
func Load() (Settings, error) {
	s := Settings{
		RNGSeed:                envUint64("RNG_SEED", defaultRNGSeed),
		RecordReductionEnabled: envBool("RECORD_REDUCTION_ENABLED", false),
		UploadAnonymizedFiles:  envBool("UPLOAD_ANONYMIZED_FILES", false),
		AnonymizedBucket:       os.Getenv("ANONYMIZED_BUCKET"),
		NumOfBuffers:           envInt("NUM_OF_BUFFERS", defaultNumOfBuffers),
		DBConnString:           os.Getenv("TARGET_DB_URL"),
		DBMaxConns:             defaultDBMaxConns,
		DBConnectTimeout:       defaultDBConnectTimeout,
	}

	if s.UploadAnonymizedFiles && s.AnonymizedBucket == "" {
		return Settings{}, errMissingEnv("ANONYMIZED_BUCKET")
	}
	if s.DBConnString == "" {
		return Settings{}, errMissingEnv("TARGET_DB_URL")
	}

	return s, nil
}

func envBool(name string, fallback bool) bool {
	raw, ok := os.LookupEnv(name)
	if !ok {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envInt(name string, fallback int) int {
	raw, ok := os.LookupEnv(name)
	if !ok {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envUint64(name string, fallback uint64) uint64 {
	raw, ok := os.LookupEnv(name)
	if !ok {
		return fallback
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return v
}
