package cell

// Snapshot is an immutable copy of a cell's coordinate, pose and points.
// Every container in it is freshly allocated; mutating a Snapshot never
// reaches the live cell.
type Snapshot struct {
	ID             ID
	Mode           Mode
	Links          []Link
	Sensor         SensorState
	Autonomy       Autonomy
	Role           Role
	ForceOwnership ForceOwnership
	Class          HardwareClass
	Target         HardwareTarget
	Pose           Pose
	// Occupants maps each occupied point to its neighbor.
	Occupants map[Point]ID
}

// Snapshot copies the full 9-attribute coordinate.
// Complexity: O(d log d) for d neighbors.
func (c *Cell) Snapshot() Snapshot {
	occ := make(map[Point]ID, numPoints)
	for _, p := range Points {
		if c.occupied[p] {
			occ[p] = c.occupant[p]
		}
	}
	return Snapshot{
		ID:             c.id,
		Mode:           c.mode,
		Links:          c.Links(),
		Sensor:         c.Sensor, // FieldStrength is an array: copied by value
		Autonomy:       c.Autonomy,
		Role:           c.Role,
		ForceOwnership: c.force,
		Class:          c.Class,
		Target:         c.Target,
		Pose:           c.Pose,
		Occupants:      occ,
	}
}
