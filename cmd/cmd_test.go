package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gosheet/internal/errs"
	"github.com/alexiusacademia/gosheet/internal/version"
)

// resetFlags restores every flag of c and its children to its default, so
// package-level flag variables do not leak between runs.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out, stderr bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), stderr.String(), err
}

func TestBanner(t *testing.T) {
	out, _, err := execute(t)
	require.NoError(t, err)
	assert.Contains(t, out, "gosheet v"+version.Version)
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, version.String())
}

func TestMaterials(t *testing.T) {
	out, _, err := execute(t, "materials")
	require.NoError(t, err)
	for _, name := range []string{"AA5754", "DC04", "DP600", "SS304", "stamping"} {
		assert.Contains(t, out, name)
	}
}

func TestStress(t *testing.T) {
	out, _, err := execute(t, "stress", "--sx", "100", "--sy", "50", "--txy", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "INVARIANTS")
	// 75 ± √1525
	assert.Contains(t, out, "114.0512")
	assert.Contains(t, out, "35.9488")
}

func TestTube(t *testing.T) {
	out, _, err := execute(t, "tube")
	require.NoError(t, err)
	assert.Contains(t, out, "Pressure at yield p = 5.21")
	assert.Regexp(t, `Criterion:\s+mises`, out)

	out, _, err = execute(t, "tube", "-c", "tresca", "-T", "1000")
	require.NoError(t, err)
	assert.Contains(t, out, "tresca")

	out, _, err = execute(t, "tube", "-c", "hill", "-T", "0", "--r0", "1", "--r90", "1")
	require.NoError(t, err)
	assert.Regexp(t, `Criterion:\s+hill`, out)
}

func TestTubeErrors(t *testing.T) {
	_, _, err := execute(t, "tube", "--criterion", "bogus")
	require.Error(t, err)
	assert.True(t, errs.IsDomain(err))

	_, _, err = execute(t, "tube", "--torque", "5000")
	require.Error(t, err)
	assert.True(t, errs.IsDomain(err), "tube already yields under torque alone")
}

func TestStretch(t *testing.T) {
	out, _, err := execute(t, "stretch", "--sweep", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "STRETCH FORMING")
	assert.Contains(t, out, "Punch pressure at O")
	assert.Contains(t, out, "STRAINS AGAINST CONTACT ANGLE")

	_, _, err = execute(t, "stretch", "--eps0", "0.01")
	assert.Error(t, err, "stretch forming needs a Hollomon material")
}

func TestStamp(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "profile.svg")
	out, _, err := execute(t, "stamp", "--diagram", "-o", file)
	require.NoError(t, err)
	assert.Contains(t, out, "CHANNEL STAMPING")
	assert.Contains(t, out, "Max strain      = ")
	assert.Contains(t, out, "at B")
	assert.Contains(t, out, "◄ max")

	info, err := os.Stat(file)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestStampPlaneStrain(t *testing.T) {
	out, _, err := execute(t, "stamp", "--plane-strain")
	require.NoError(t, err)
	assert.Contains(t, out, "Plane strain:  yes")

	_, _, err = execute(t, "stamp", "--pole-strain", "-0.1")
	assert.Error(t, err)
}

func TestNecking(t *testing.T) {
	out, _, err := execute(t, "necking", "--chart")
	require.NoError(t, err)
	assert.Contains(t, out, "SWIFT LIMIT STRAINS")
	assert.Contains(t, out, "HILL LIMIT STRAINS")
	assert.Contains(t, out, "—", "hill has no limit for positive ratios")
	assert.NotContains(t, out, "FRACTURE")

	out, _, err = execute(t, "necking", "--eps3", "-0.6")
	require.NoError(t, err)
	assert.Contains(t, out, "FRACTURE")
}

func TestNeckingStrict(t *testing.T) {
	out, _, err := execute(t, "necking", "--model", "hill", "--from", "-0.5", "--to", "0", "--points", "3")
	require.NoError(t, err)
	// Plane strain limit equals n for DC04.
	assert.Contains(t, out, "0.2300")

	_, _, err = execute(t, "necking", "--model", "hill")
	require.Error(t, err)
	assert.True(t, errs.IsDomain(err))

	_, _, err = execute(t, "necking", "--model", "bogus")
	assert.Error(t, err)

	_, _, err = execute(t, "necking", "--points", "1")
	assert.Error(t, err)
}

func TestYield(t *testing.T) {
	file := filepath.Join(t.TempDir(), "locus.png")
	out, _, err := execute(t, "yield", "--criterion", "hosford", "--sx", "300", "--sy", "150", "--chart", "-o", file)
	require.NoError(t, err)
	assert.Contains(t, out, "STRESS STATE")
	assert.Contains(t, out, "Yields")
	assert.Contains(t, out, "Diagram exported to")
	assert.FileExists(t, file)

	out, _, err = execute(t, "yield", "--sx", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "Elastic")

	_, _, err = execute(t, "yield", "--material", "stamping")
	assert.Error(t, err, "stamping preset has no yield stress")
}

func TestBend(t *testing.T) {
	out, _, err := execute(t, "bend", "--diagram")
	require.NoError(t, err)
	assert.Contains(t, out, "ELASTIC-PLASTIC BENDING")
	assert.Contains(t, out, "Outer fibres have yielded")
	assert.Contains(t, out, "(plastic)")

	out, _, err = execute(t, "bend", "--radius", "100000")
	require.NoError(t, err)
	assert.Contains(t, out, "Section is elastic")
}

func TestImperfection(t *testing.T) {
	out, _, err := execute(t, "imperfection", "--sweep", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Factor f = wB/wA:  0.9800")
	assert.Contains(t, out, "LIMIT STRAIN AGAINST IMPERFECTION")

	_, _, err = execute(t, "imperfection", "--width-b", "21")
	require.Error(t, err)
	assert.True(t, errs.IsDomain(err))
}

func TestRun(t *testing.T) {
	out, stderr, err := execute(t, "run", "--file", filepath.Join("..", "internal", "material", "testdata", "course.toml"))
	require.NoError(t, err)
	assert.Contains(t, out, "CASE - course")
	assert.Contains(t, out, "tube 1: closed tube")
	assert.Contains(t, out, "Pressure at yield p = 5.21")
	assert.Contains(t, out, "tube 2: closed tube, tresca")
	assert.Contains(t, out, "stamping 1: channel")
	assert.Contains(t, out, "imperfection 1")
	assert.Contains(t, out, "bending 1")
	assert.Contains(t, out, "necking hill 1: hill")
	assert.Contains(t, stderr, "Solved 7 problems")
}

func TestRunErrors(t *testing.T) {
	_, _, err := execute(t, "run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"file"`)

	_, _, err = execute(t, "run", "-f", filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[material]\npreset = \"DC04\"\n\n[[tube]]\ndiameter = 80\nthickness = 2\ntorque = 5000\n"), 0o644))
	_, _, err = execute(t, "run", "-f", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tube 1")
}

func TestVerboseLogging(t *testing.T) {
	_, stderr, err := execute(t, "-v", "tube")
	require.NoError(t, err)
	assert.Contains(t, stderr, "tube pressure solved")

	_, stderr, err = execute(t, "tube")
	require.NoError(t, err)
	assert.NotContains(t, stderr, "tube pressure solved")
}

func TestLoggerFromContext(t *testing.T) {
	assert.Same(t, log.Default(), loggerFromContext(context.Background()))

	var buf bytes.Buffer
	l := newLogger(&buf, log.WarnLevel)
	ctx := withLogger(context.Background(), l)
	assert.Same(t, l, loggerFromContext(ctx))

	l.Info("hidden")
	l.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
