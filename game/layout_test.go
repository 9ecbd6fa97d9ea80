package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// lineLayout is a minimal custom topology: a corridor of cells with one
// starting cell per player at each end.
func lineLayout(length int) BoardLayout {
	cells := make([]CubeCoord, length)
	for i := range cells {
		cells[i] = Coord(i, 0)
	}
	return BoardLayout{
		Cells: cells,
		StartingPositions: [][]CubeCoord{
			{cells[0]},
			{cells[length-1]},
		},
	}
}

func TestNewCustomGameState(t *testing.T) {
	t.Run("goals default to the opposite seat's start", func(t *testing.T) {
		gs, err := NewCustomGameState(lineLayout(5))
		require.NoError(t, err)
		require.True(t, gs.IsCustomLayout)
		require.Equal(t, []CubeCoord{Coord(4, 0)}, gs.GoalCells(1))
		require.Equal(t, []CubeCoord{Coord(0, 0)}, gs.GoalCells(2))
	})

	t.Run("explicit goals are honored", func(t *testing.T) {
		layout := lineLayout(5)
		layout.GoalPositions = [][]CubeCoord{
			{Coord(3, 0)},
			{Coord(1, 0)},
		}
		gs, err := NewCustomGameState(layout)
		require.NoError(t, err)
		require.Equal(t, []CubeCoord{Coord(3, 0)}, gs.GoalCells(1))
	})

	t.Run("walls block the cell", func(t *testing.T) {
		layout := lineLayout(5)
		layout.Walls = []CubeCoord{Coord(2, 0)}
		gs, err := NewCustomGameState(layout)
		require.NoError(t, err)
		cell, ok := gs.Board.At(Coord(2, 0))
		require.True(t, ok)
		require.Equal(t, Wall, cell)
		require.False(t, gs.Board.IsOpen(Coord(2, 0)))
	})

	t.Run("validation failures", func(t *testing.T) {
		cases := map[string]func() BoardLayout{
			"too few players": func() BoardLayout {
				l := lineLayout(5)
				l.StartingPositions = l.StartingPositions[:1]
				return l
			},
			"no cells": func() BoardLayout {
				l := lineLayout(5)
				l.Cells = nil
				return l
			},
			"duplicate cell": func() BoardLayout {
				l := lineLayout(5)
				l.Cells = append(l.Cells, Coord(0, 0))
				return l
			},
			"wall off the layout": func() BoardLayout {
				l := lineLayout(5)
				l.Walls = []CubeCoord{Coord(9, 9)}
				return l
			},
			"starting cell off the layout": func() BoardLayout {
				l := lineLayout(5)
				l.StartingPositions[0] = []CubeCoord{Coord(9, 9)}
				return l
			},
			"goal cell off the layout": func() BoardLayout {
				l := lineLayout(5)
				l.GoalPositions = [][]CubeCoord{{Coord(9, 9)}, {Coord(0, 0)}}
				return l
			},
			"goal list count mismatch": func() BoardLayout {
				l := lineLayout(5)
				l.GoalPositions = [][]CubeCoord{{Coord(0, 0)}}
				return l
			},
			"starting cells collide": func() BoardLayout {
				l := lineLayout(5)
				l.StartingPositions[1] = []CubeCoord{Coord(0, 0)}
				return l
			},
		}
		for name, build := range cases {
			t.Run(name, func(t *testing.T) {
				_, err := NewCustomGameState(build())
				require.Error(t, err)
			})
		}
	})
}
