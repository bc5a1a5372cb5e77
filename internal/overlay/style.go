package overlay

import "github.com/cristianoliveira/maprepl/internal/geo"

// GradeProperty is the feature property that selects the base layer color.
const GradeProperty = "holc_grade"

// Layer colors.
const (
	ColorGradeA   = "#5bcc04"
	ColorGradeB   = "#04b8cc"
	ColorGradeC   = "#e9ed0e"
	ColorGradeD   = "#d11d1d"
	ColorUngraded = "#ccc"
	ColorFiltered = "#fe3fb3"
)

// Layer opacities, kept for renderers that blend.
const (
	BaseOpacity     = 0.2
	FilteredOpacity = 0.6
)

var gradeColors = map[string]string{
	"A": ColorGradeA,
	"B": ColorGradeB,
	"C": ColorGradeC,
	"D": ColorGradeD,
}

// GradeColor is the base layer fill for f.
func GradeColor(f geo.Feature) string {
	if c, ok := gradeColors[f.Property(GradeProperty)]; ok {
		return c
	}
	return ColorUngraded
}
