// SPDX-License-Identifier: MIT

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgsCollectsRepeatedReplaceNeeded(t *testing.T) {
	opts, err := parseArgs([]string{
		"--replace-needed", "libc.so.6", "libc-new.so.6",
		"--replace-needed", "libm.so.6", "libm-new.so.6",
		"a.out",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"libc.so.6": "libc-new.so.6",
		"libm.so.6": "libm-new.so.6",
	}, opts.renameMap)
	assert.Equal(t, []string{"a.out"}, opts.files)
}

func TestParseArgsLaterReplaceNeededWins(t *testing.T) {
	opts, err := parseArgs([]string{
		"--replace-needed", "libc.so.6", "first",
		"--replace-needed", "libc.so.6", "second",
		"a.out",
	})
	require.NoError(t, err)
	assert.Equal(t, "second", opts.renameMap["libc.so.6"])
}

func TestParseArgsOutputRequiresSingleInput(t *testing.T) {
	_, err := parseArgs([]string{"--output", "out", "a.out", "b.out"})
	require.Error(t, err)
}

func TestParseArgsOutputAllowsSingleInput(t *testing.T) {
	opts, err := parseArgs([]string{"--output", "out", "a.out"})
	require.NoError(t, err)
	assert.Equal(t, "out", opts.output)
}

func TestParseArgsRejectsNoInputFiles(t *testing.T) {
	_, err := parseArgs(nil)
	require.Error(t, err)
}

func TestParseArgsRejectsUnrecognizedOption(t *testing.T) {
	_, err := parseArgs([]string{"--not-a-real-flag", "a.out"})
	require.Error(t, err)
}

func TestParseArgsRejectsMissingFlagArgument(t *testing.T) {
	_, err := parseArgs([]string{"--replace-needed", "libc.so.6"})
	require.Error(t, err)
}

func TestParseArgsPageSizeAcceptsHexAndDecimal(t *testing.T) {
	opts, err := parseArgs([]string{"--page-size", "0x10000", "a.out"})
	require.NoError(t, err)
	assert.Equal(t, uint64(0x10000), opts.pageSize)

	opts, err = parseArgs([]string{"--page-size", "4096", "a.out"})
	require.NoError(t, err)
	assert.Equal(t, uint64(4096), opts.pageSize)
}

func TestParseArgsPageSizeRejectsGarbage(t *testing.T) {
	_, err := parseArgs([]string{"--page-size", "not-a-number", "a.out"})
	require.Error(t, err)
}

func TestParseArgsSetsDebugNoSortAlwaysWrite(t *testing.T) {
	opts, err := parseArgs([]string{"--debug", "--no-sort", "--always-write", "a.out"})
	require.NoError(t, err)
	assert.True(t, opts.debug)
	assert.True(t, opts.noSort)
	assert.True(t, opts.alwaysWrite)
}

func TestParseArgsNoClobberDefaultsFalse(t *testing.T) {
	opts, err := parseArgs([]string{"a.out"})
	require.NoError(t, err)
	assert.False(t, opts.noClobber)

	opts, err = parseArgs([]string{"--no-clobber", "a.out"})
	require.NoError(t, err)
	assert.True(t, opts.noClobber)
}

func TestParseArgsPrintNeededAndRPath(t *testing.T) {
	opts, err := parseArgs([]string{"--print-needed", "a.out"})
	require.NoError(t, err)
	assert.True(t, opts.printNeeded)

	opts, err = parseArgs([]string{"--print-rpath", "a.out"})
	require.NoError(t, err)
	assert.True(t, opts.printRPath)
}

func TestParseArgsOutputResolvesArgfile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "outpath.txt")
	require.NoError(t, os.WriteFile(path, []byte("  /tmp/resolved-output  \n"), 0o644))

	opts, err := parseArgs([]string{"--output", "@" + path, "a.out"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/resolved-output", opts.output)
}

func TestParseArgsOutputArgfileMissingFile(t *testing.T) {
	_, err := parseArgs([]string{"--output", "@/nonexistent/path", "a.out"})
	require.Error(t, err)
}

func TestResolveArgfilePassesThroughNonArgfileValues(t *testing.T) {
	resolved, err := resolveArgfile("plain-value")
	require.NoError(t, err)
	assert.Equal(t, "plain-value", resolved)
}
