package kmcconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		MaxEntities:     100,
		MaxTime:         1e9,
		InitialEntities: 0,
		MaxDegree:       8,
		MaxTweets:       200,
		FollowModel:     RandomFollow,
		EntityTypes: []EntityType{
			{Name: "user", ProbAdd: 1.0, ProbFollow: 1.0},
		},
	}
}

func TestValidateAcceptsWellFormedConfig(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())
}

func TestValidateRejectsEmptyEntityTypes(t *testing.T) {
	cfg := validConfig()
	cfg.EntityTypes = nil
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsProbAddNotSummingToOne(t *testing.T) {
	cfg := validConfig()
	cfg.EntityTypes = []EntityType{
		{Name: "a", ProbAdd: 0.3, ProbFollow: 1.0},
		{Name: "b", ProbAdd: 0.3, ProbFollow: 1.0},
	}
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsInitialExceedingMax(t *testing.T) {
	cfg := validConfig()
	cfg.InitialEntities = cfg.MaxEntities + 1
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsUnknownFollowModel(t *testing.T) {
	cfg := validConfig()
	cfg.FollowModel = "SOMETHING_ELSE"
	require.Error(t, cfg.Validate())
}

func TestLoadRoundTripsThroughYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kmc.yaml")
	cfg := validConfig()
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.MaxEntities, loaded.MaxEntities)
	require.Equal(t, cfg.FollowModel, loaded.FollowModel)
	require.Len(t, loaded.EntityTypes, 1)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kmc.yaml")
	cfg := validConfig()
	cfg.EntityTypes = nil
	require.NoError(t, Save(path, cfg))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestSetupLoggerFallsBackWhenFileUnopenable(t *testing.T) {
	logger, cleanup := SetupLogger(string([]byte{0}), 0)
	require.NotNil(t, logger)
	require.NoError(t, cleanup())
}

func TestSetupLoggerWithWriters(t *testing.T) {
	logger := SetupLoggerWithWriters(os.Stderr, os.Stderr, 0)
	require.NotNil(t, logger)
}
