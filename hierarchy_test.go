package scoring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adaptlearning/scoring"
	"github.com/adaptlearning/scoring/internal/contentmodel"
)

func buildTree() (course, block, q1, q2 *contentmodel.Model) {
	course = contentmodel.New("course-1", "course")
	block = contentmodel.New("block-1", "block")
	q1 = contentmodel.New("q1", "component")
	q2 = contentmodel.New("q2", "component")
	course.AddChild(block)
	block.AddChild(q1)
	block.AddChild(q2)
	return
}

func asContentModels(models ...*contentmodel.Model) []scoring.ContentModel {
	out := make([]scoring.ContentModel, len(models))
	for i, m := range models {
		out[i] = m
	}
	return out
}

func TestFilterByIntersectingHierarchy_EmptyBReturnsA(t *testing.T) {
	_, block, q1, _ := buildTree()
	a := asContentModels(block, q1)

	out := scoring.FilterByIntersectingHierarchy(a, nil)

	assert.Equal(t, a, out)
}

func TestFilterByIntersectingHierarchy_KeepsAncestorsAndDescendants(t *testing.T) {
	course, block, q1, q2 := buildTree()

	// a contains the course (ancestor of q1) and q2 (descendant of block);
	// b narrows to {block, q1}. Both should survive: course because it is
	// an ancestor of b's elements, q2 because it is a descendant of block.
	a := asContentModels(course, q2)
	b := asContentModels(block, q1)

	out := scoring.FilterByIntersectingHierarchy(a, b)

	assert.ElementsMatch(t, asContentModels(course, q2), out)
}

func TestFilterByIntersectingHierarchy_DropsUnrelated(t *testing.T) {
	_, block, q1, q2 := buildTree()
	other := contentmodel.New("other-1", "component")

	a := asContentModels(other)
	b := asContentModels(block, q1, q2)

	out := scoring.FilterByIntersectingHierarchy(a, b)

	assert.Empty(t, out)
}
