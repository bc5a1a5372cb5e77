package overlay

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cristianoliveira/maprepl/internal/geo"
)

type mockSource struct{ mock.Mock }

func (m *mockSource) Redlining(ctx context.Context, box geo.BBox) (*geo.FeatureCollection, error) {
	args := m.Called(ctx, box)
	fc, _ := args.Get(0).(*geo.FeatureCollection)
	return fc, args.Error(1)
}

func (m *mockSource) Filter(ctx context.Context, keyword string) (*geo.FeatureCollection, error) {
	args := m.Called(ctx, keyword)
	fc, _ := args.Get(0).(*geo.FeatureCollection)
	return fc, args.Error(1)
}

func TestRedliningRequestsWholeWorld(t *testing.T) {
	src := &mockSource{}
	want := &geo.FeatureCollection{Type: "FeatureCollection"}
	src.On("Redlining", mock.Anything, WorldBBox).Return(want, nil).Once()

	got, err := NewFetcher(src, nil).Redlining(context.Background())
	require.NoError(t, err)
	assert.Same(t, want, got)
	src.AssertExpectations(t)
}

func TestRedliningWrapsErrors(t *testing.T) {
	src := &mockSource{}
	boom := errors.New("boom")
	src.On("Redlining", mock.Anything, WorldBBox).Return(nil, boom)

	_, err := NewFetcher(src, nil).Redlining(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestFilteredReplacesUnderscores(t *testing.T) {
	src := &mockSource{}
	src.On("Filter", mock.Anything, "rail yards").Return(&geo.FeatureCollection{}, nil).Once()

	_, err := NewFetcher(src, nil).Filtered(context.Background(), "rail_yards")
	require.NoError(t, err)
	src.AssertExpectations(t)
}

func TestMockedCollection(t *testing.T) {
	fc, err := Mocked()
	require.NoError(t, err)
	require.Equal(t, 3, fc.Len())

	hit, ok := fc.HitTest(geo.Point{Lon: -71.41, Lat: 41.83})
	require.True(t, ok)
	assert.Equal(t, "College Hill", hit.Property("name"))
	assert.Equal(t, ColorGradeA, GradeColor(hit))
}

func TestGradeColor(t *testing.T) {
	tests := map[string]string{
		"A": ColorGradeA,
		"B": ColorGradeB,
		"C": ColorGradeC,
		"D": ColorGradeD,
		"E": ColorUngraded,
		"":  ColorUngraded,
	}
	for grade, want := range tests {
		f := geo.Feature{Properties: map[string]any{GradeProperty: grade}}
		assert.Equal(t, want, GradeColor(f), grade)
	}
	assert.Equal(t, ColorUngraded, GradeColor(geo.Feature{}))
}
