package packaging

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCommand struct {
	dir  string
	name string
	args []string
}

func recordingRunner(calls *[]recordedCommand, err error) CommandRunner {
	return func(_ context.Context, dir, name string, args ...string) ([]byte, error) {
		*calls = append(*calls, recordedCommand{dir: dir, name: name, args: args})
		if err != nil {
			return []byte("CMake Error: boom"), err
		}
		return nil, nil
	}
}

func TestCMakeDriver(t *testing.T) {
	var calls []recordedCommand
	d := &CMakeDriver{Binary: "/usr/bin/cmake", Generator: "Ninja", Run: recordingRunner(&calls, nil)}
	dirs := Dirs{Source: "/src", Build: "/build", Package: "/pkg"}
	ctx := context.Background()

	require.NoError(t, d.Configure(ctx, dirs, map[string]string{"hypertrie_BUILD_TESTS": "OFF", "A": "1"}))
	require.NoError(t, d.Build(ctx, dirs))
	require.NoError(t, d.Install(ctx, dirs))

	require.Len(t, calls, 3)
	assert.Equal(t, recordedCommand{
		dir:  "/src",
		name: "/usr/bin/cmake",
		args: []string{
			"-S", "/src", "-B", "/build",
			"-DCMAKE_BUILD_TYPE=Release", "-DCMAKE_INSTALL_PREFIX=/pkg",
			"-G", "Ninja",
			"-DA=1", "-Dhypertrie_BUILD_TESTS=OFF",
		},
	}, calls[0])
	assert.Equal(t, []string{"--build", "/build", "--config", "Release"}, calls[1].args)
	assert.Equal(t, []string{"--install", "/build", "--prefix", "/pkg", "--config", "Release"}, calls[2].args)
}

func TestCMakeDriver_BuildType(t *testing.T) {
	var calls []recordedCommand
	d := &CMakeDriver{Binary: "cmake", BuildType: "Debug", Run: recordingRunner(&calls, nil)}
	require.NoError(t, d.Build(context.Background(), Dirs{Build: "b"}))
	assert.Equal(t, []string{"--build", "b", "--config", "Debug"}, calls[0].args)
}

func TestCMakeDriver_Failure(t *testing.T) {
	var calls []recordedCommand
	cause := errors.New("exit status 1")
	d := &CMakeDriver{Binary: "cmake", Run: recordingRunner(&calls, cause)}

	err := d.Configure(context.Background(), Dirs{Source: "s", Build: "b"}, nil)
	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "cmake configure")
}
