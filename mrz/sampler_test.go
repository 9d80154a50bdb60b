package mrz

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSampleSex(t *testing.T) {
	tests := []struct {
		draw float64
		want string
	}{
		{0.0, "M"},
		{0.4899, "M"},
		{0.49, "F"},
		{0.9799, "F"},
		{0.98, "<"},
		{0.9999, "<"},
	}
	for _, tt := range tests {
		src := &scriptedSource{t: t, floats: []float64{tt.draw}}
		require.Equal(t, tt.want, SampleSex(src), "draw %v", tt.draw)
	}
}

func TestSampleDocumentType(t *testing.T) {
	t.Run("weight boundaries", func(t *testing.T) {
		tests := []struct {
			draw int
			want string
		}{
			{0, "P<"},
			{84, "P<"},
			{85, "PD"},
			{92, "PD"},
			{93, "PS"},
			{97, "PS"},
			{98, "D<"},
			{99, "D<"},
		}
		for _, tt := range tests {
			src := &scriptedSource{t: t, ints: []int{tt.draw}}
			got, err := SampleDocumentType(src, DefaultDocumentTypes)
			require.NoError(t, err)
			require.Equal(t, tt.want, got.Code(), "draw %d", tt.draw)
		}
	})

	t.Run("distribution approximates configured weights", func(t *testing.T) {
		const draws = 10000
		src := newSeededSource(2024)
		counts := map[string]int{}
		for i := 0; i < draws; i++ {
			got, err := SampleDocumentType(src, DefaultDocumentTypes)
			require.NoError(t, err)
			counts[got.Code()]++
		}

		for _, dt := range DefaultDocumentTypes {
			p := float64(dt.Weight) / 100
			expected := p * draws
			// five standard deviations
			tolerance := 5 * math.Sqrt(draws*p*(1-p))
			require.InDelta(t, expected, float64(counts[dt.Code()]), tolerance, "document type %s", dt.Code())
		}
	})

	t.Run("zero weight entries are never picked", func(t *testing.T) {
		types := []DocumentType{
			{Type: "P", Subtype: "<", Weight: 0},
			{Type: "P", Subtype: "D", Weight: 1},
		}
		src := newSeededSource(5)
		for i := 0; i < 100; i++ {
			got, err := SampleDocumentType(src, types)
			require.NoError(t, err)
			require.Equal(t, "PD", got.Code())
		}
	})

	t.Run("empty list is a configuration error", func(t *testing.T) {
		_, err := SampleDocumentType(newSeededSource(1), nil)
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("zero total weight is a configuration error", func(t *testing.T) {
		types := []DocumentType{{Type: "P", Subtype: "<", Weight: 0}}
		_, err := SampleDocumentType(newSeededSource(1), types)
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("negative weight is a configuration error", func(t *testing.T) {
		types := []DocumentType{
			{Type: "P", Subtype: "<", Weight: 10},
			{Type: "P", Subtype: "D", Weight: -1},
		}
		_, err := SampleDocumentType(newSeededSource(1), types)
		require.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestSampleCode(t *testing.T) {
	src := &scriptedSource{t: t, ints: []int{2}}
	code, err := SampleCode(src, []string{"NLD", "GBR", "UTO"})
	require.NoError(t, err)
	require.Equal(t, "UTO", code)

	_, err = SampleCode(newSeededSource(1), nil)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSampleName(t *testing.T) {
	surnames := []string{"ERIKSSON", "SANDERSON"}
	given := []string{"ANNA", "MARIA", "OSCAR"}

	tests := []struct {
		name      string
		countDraw float64
		ints      []int
		want      Name
	}{
		{"one given name", 0.69, []int{1, 2}, Name{"SANDERSON", []string{"OSCAR"}}},
		{"two given names", 0.70, []int{0, 0, 1}, Name{"ERIKSSON", []string{"ANNA", "MARIA"}}},
		{"two given names upper bound", 0.9499, []int{0, 1, 1}, Name{"ERIKSSON", []string{"MARIA", "MARIA"}}},
		{"three given names", 0.95, []int{1, 2, 1, 0}, Name{"SANDERSON", []string{"OSCAR", "MARIA", "ANNA"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &scriptedSource{t: t, ints: tt.ints, floats: []float64{tt.countDraw}}
			got, err := SampleName(src, surnames, given)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			src.requireDrained()
		})
	}

	t.Run("empty surname pool", func(t *testing.T) {
		_, err := SampleName(newSeededSource(1), nil, given)
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("empty given name pool", func(t *testing.T) {
		_, err := SampleName(newSeededSource(1), surnames, []string{})
		require.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestSampleDocumentNumber(t *testing.T) {
	t.Run("scripted shapes", func(t *testing.T) {
		src := &scriptedSource{t: t,
			floats: []float64{0.1},
			ints:   []int{1, 2, 3, 4, 5, 6, 7, 8, 9},
		}
		require.Equal(t, "123456789", SampleDocumentNumber(src))

		src = &scriptedSource{t: t,
			floats: []float64{0.7},
			ints:   []int{11, 8, 9, 8, 9, 0, 2, 3, 4},
		}
		require.Equal(t, "L89890234", SampleDocumentNumber(src))

		src = &scriptedSource{t: t,
			floats: []float64{0.9},
			ints:   []int{7, 0, 6, 7, 2, 2, 4, 2, 0},
		}
		require.Equal(t, "HA6722420", SampleDocumentNumber(src))
	})

	t.Run("every draw has one of three shapes", func(t *testing.T) {
		src := newSeededSource(11)
		shapes := map[int]int{}
		for i := 0; i < 5000; i++ {
			number := SampleDocumentNumber(src)
			require.Len(t, number, DocumentNumberLength)
			letterCount := 0
			for j := 0; j < len(number); j++ {
				class, _ := classify(number[j])
				if class == classLetter {
					require.Equal(t, letterCount, j, "letters must lead in %q", number)
					letterCount++
				} else {
					require.Equal(t, classDigit, class)
				}
			}
			require.LessOrEqual(t, letterCount, 2)
			shapes[letterCount]++
		}
		require.Len(t, shapes, 3)
	})
}

func TestSamplePersonalNumber(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		src := &scriptedSource{t: t, floats: []float64{0.59}}
		require.Equal(t, "", SamplePersonalNumber(src))
	})

	t.Run("short", func(t *testing.T) {
		src := &scriptedSource{t: t, floats: []float64{0.6}, ints: []int{0, 35, 14, 1}}
		require.Equal(t, "ZE1", SamplePersonalNumber(src))
		src.requireDrained()
	})

	t.Run("long", func(t *testing.T) {
		src := &scriptedSource{t: t,
			floats: []float64{0.8},
			ints:   []int{6, 35, 14, 1, 8, 4, 2, 2, 6, 11, 0, 0, 0, 0, 0},
		}
		require.Equal(t, "ZE184226B00000", SamplePersonalNumber(src))
		src.requireDrained()
	})

	t.Run("lengths fall in the two sub-ranges", func(t *testing.T) {
		src := newSeededSource(99)
		for i := 0; i < 5000; i++ {
			pn := SamplePersonalNumber(src)
			n := len(pn)
			require.True(t, n == 0 || (n >= 3 && n <= 14), "unexpected length %d", n)
			for j := 0; j < n; j++ {
				class, _ := classify(pn[j])
				require.NotEqual(t, classOther, class)
			}
		}
	})
}
