package steer

import (
	"github.com/lixenwraith/vi-steer/vmath"
)

// Data sources are pulled once per tick by the behavior that owns them
// Implementations must be cheap and side-effect-free; returned slices are read, never retained or mutated

// TargetSource yields a live target point, ok=false when there is none this tick
type TargetSource interface {
	Target() (vmath.Vec2, bool)
}

// NeighborSource yields positions of nearby agents, may include the querying agent itself
type NeighborSource interface {
	Neighbors() []vmath.Vec2
}

// ObstacleSource yields circular obstacles
type ObstacleSource interface {
	Obstacles() []Obstacle
}

// Obstacle is a circle the agent should steer around
type Obstacle struct {
	Position vmath.Vec2
	Radius   float64
}

// TargetFunc adapts a function to TargetSource
type TargetFunc func() (vmath.Vec2, bool)

func (f TargetFunc) Target() (vmath.Vec2, bool) { return f() }

// NeighborFunc adapts a function to NeighborSource
type NeighborFunc func() []vmath.Vec2

func (f NeighborFunc) Neighbors() []vmath.Vec2 { return f() }

// ObstacleFunc adapts a function to ObstacleSource
type ObstacleFunc func() []Obstacle

func (f ObstacleFunc) Obstacles() []Obstacle { return f() }

// FixedTarget is a target that never moves
type FixedTarget vmath.Vec2

func (t FixedTarget) Target() (vmath.Vec2, bool) { return vmath.Vec2(t), true }

// StaticNeighbors is a fixed neighbor set
type StaticNeighbors []vmath.Vec2

func (n StaticNeighbors) Neighbors() []vmath.Vec2 { return n }

// StaticObstacles is a fixed obstacle set
type StaticObstacles []Obstacle

func (o StaticObstacles) Obstacles() []Obstacle { return o }
