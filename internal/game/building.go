package game

import "math"

// footprintRotation gives each building type its fixed orientation relative
// to the builder's heading.
func footprintRotation(kind BuildingType, yaw float64) (Vec3, bool) {
	switch kind {
	case BuildingWall:
		return Vec3{Y: yaw}, true
	case BuildingRamp:
		return Vec3{X: -math.Pi / 4, Y: yaw}, true
	case BuildingFloor:
		return Vec3{X: -math.Pi / 2, Y: yaw}, true
	default:
		return Vec3{}, false
	}
}

// Build debits the wood cost and places a building at position.
func (gm *GameMechanics) Build(state *MatchState, builder *Player, kind BuildingType, position Vec3) (*Building, Outcome, error) {
	rotation, ok := footprintRotation(kind, builder.Rotation.Y)
	if !ok {
		return nil, OutcomeInvalid, ErrUnknownBuildingType
	}

	if builder.Materials.Wood < gm.tuning.BuildCost {
		return nil, OutcomeInsufficientMaterials, nil
	}
	builder.Materials.Wood -= gm.tuning.BuildCost

	building := &Building{
		ID:       gm.ids.newID("building"),
		Type:     kind,
		Position: position,
		Rotation: rotation,
		Material: MaterialWood,
		Health:   BuildingHealth,
		PlacedBy: builder.ID,
	}
	state.Buildings = append(state.Buildings, building)

	gm.log.Info().
		Str("player", builder.ID).
		Str("building", building.ID).
		Str("type", string(kind)).
		Int("wood_left", builder.Materials.Wood).
		Msg("structure built")
	return building, OutcomeApplied, nil
}
