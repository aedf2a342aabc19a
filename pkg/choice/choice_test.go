package choice

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type failingReader struct{ t *testing.T }

func (r failingReader) Read([]byte) (int, error) {
	r.t.Fatal("unexpected read from input")
	return 0, errors.New("unreachable")
}

func TestResolveSingleCandidateSkipsPrompt(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(failingReader{t}, &out)

	got, err := Resolve(p, []Candidate[int]{Of("only", 42)})
	require.NoError(t, err)
	require.Equal(t, 42, got)
	require.Empty(t, out.String())
}

func TestResolvePicksByDisplayNumber(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("2\n"), &out)

	got, err := Resolve(p, []Candidate[int]{Of("A", 1), Of("B", 2)})
	require.NoError(t, err)
	require.Equal(t, 2, got)
	require.Contains(t, out.String(), "1) A\n2) B\n")
	require.Contains(t, out.String(), numberPrompt)
}

func TestResolveEveryIndex(t *testing.T) {
	candidates := []Candidate[string]{Of("a", "x"), Of("b", "y"), Of("c", "z")}
	want := []string{"x", "y", "z"}
	for i, w := range want {
		p := NewPrompter(strings.NewReader(strconv.Itoa(i+1)+"\n"), &bytes.Buffer{})
		got, err := Resolve(p, candidates)
		require.NoError(t, err)
		require.Equal(t, w, got)
	}
}

func TestResolveCustomStart(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("1\n0\n"), &out)

	got, err := ResolveFrom(p, []Candidate[string]{Of("zero", "z"), Of("one", "o")}, 0)
	require.NoError(t, err)
	require.Equal(t, "o", got)
	require.Contains(t, out.String(), "0) zero\n1) one\n")
}

func TestResolveRepromptsUntilValid(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("abc\n7\n0\n\n1\n"), &out)

	got, err := Resolve(p, []Candidate[string]{Of("A", "a"), Of("B", "b")})
	require.NoError(t, err)
	require.Equal(t, "a", got)
	require.Equal(t, 2, strings.Count(out.String(), numberFormatError))
	require.Equal(t, 2, strings.Count(out.String(), numberRangeError))
	require.Equal(t, 5, strings.Count(out.String(), numberPrompt))
}

func TestResolveEmptyFailsBeforeIO(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(failingReader{t}, &out)

	_, err := Resolve(p, []Candidate[int]{})
	require.ErrorIs(t, err, ErrInvalidArgument)
	require.Empty(t, out.String())
}

func TestResolveOnlyForcesSelected(t *testing.T) {
	calls := map[string]int{}
	produce := func(name string) func() (string, error) {
		return func() (string, error) {
			calls[name]++
			return name, nil
		}
	}
	p := NewPrompter(strings.NewReader("2\n"), &bytes.Buffer{})

	got, err := Resolve(p, []Candidate[string]{
		Lazy("first", produce("first")),
		Lazy("second", produce("second")),
	})
	require.NoError(t, err)
	require.Equal(t, "second", got)
	require.Equal(t, map[string]int{"second": 1}, calls)
}

func TestResolveProducerError(t *testing.T) {
	boom := errors.New("boom")
	p := NewPrompter(strings.NewReader("1\n"), &bytes.Buffer{})

	_, err := Resolve(p, []Candidate[int]{
		Lazy("fails", func() (int, error) { return 0, boom }),
		Of("works", 1),
	})
	require.ErrorIs(t, err, boom)
}

func TestResolveCancelledOnEOF(t *testing.T) {
	p := NewPrompter(strings.NewReader("9\n"), &bytes.Buffer{})

	_, err := Resolve(p, []Candidate[int]{Of("A", 1), Of("B", 2)})
	require.ErrorIs(t, err, ErrCancelled)
}

type fixedPicker int

func (f fixedPicker) Pick([]string, int) (int, error) { return int(f), nil }

func TestResolveRejectsOutOfRangePicker(t *testing.T) {
	_, err := Resolve(fixedPicker(5), []Candidate[int]{Of("A", 1), Of("B", 2)})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNumberStaysInRange(t *testing.T) {
	p := NewPrompter(strings.NewReader("-1\n11\n 10 \n"), &bytes.Buffer{})

	n, err := p.Number(1, 10)
	require.NoError(t, err)
	require.Equal(t, 10, n)
}

func TestNumberAcceptsFinalLineWithoutNewline(t *testing.T) {
	p := NewPrompter(strings.NewReader("3"), &bytes.Buffer{})

	n, err := p.Number(1, 3)
	require.NoError(t, err)
	require.Equal(t, 3, n)
}

func TestEmailRejectsThenAccepts(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("bad\na@b.com\n"), &out)

	got, err := p.Email()
	require.NoError(t, err)
	require.Equal(t, "a@b.com", got)
	require.Equal(t, 1, strings.Count(out.String(), "Invalid email format, please enter a valid email."))
}

func TestTextTrimsWhitespace(t *testing.T) {
	p := NewPrompter(strings.NewReader("   \n  robot  \n"), &bytes.Buffer{})

	got, err := p.Name()
	require.NoError(t, err)
	require.Equal(t, "robot", got)
}

func TestPathRequiresDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	var out bytes.Buffer
	input := filepath.Join(dir, "missing") + "\n" + file + "\n" + dir + "\n"
	p := NewPrompter(strings.NewReader(input), &out)

	got, err := p.Path()
	require.NoError(t, err)
	require.Equal(t, dir, got)
	require.Equal(t, 2, strings.Count(out.String(), "Invalid path, please enter a valid path."))
}

func TestPredicates(t *testing.T) {
	require.True(t, IsEmail("first.last+ros@example.co"))
	require.False(t, IsEmail("no-at-sign.com"))
	require.False(t, IsEmail("a@b.c"))
	require.False(t, NonEmpty(""))
	require.True(t, All(NonEmpty, IsEmail)("a@b.com"))
	require.False(t, All(NonEmpty, IsEmail)("x"))
	require.False(t, IsDir(""))
}
