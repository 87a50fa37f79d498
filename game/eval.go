package game

// Heuristic weights, goat perspective.
const (
	WeightLiveGoat          = 6.0
	WeightCapturedGoat      = -95.0
	WeightGoatMobility      = 5.5
	WeightTigerMobility     = -3.8
	WeightVulnerableGoat    = -20.0
	WeightSemiTrappedTiger  = 22.0
	WeightGoatCentrality    = 0.9
	WeightTigerCentrality   = -0.6
	WeightClusterPlacement  = -2.2
	WeightClusterMovement   = -1.2
	WeightGoatLeftToPlace   = -4.5
	centralityRadius        = 4
	clusterThreshold        = 3
	semiTrappedMaxEmptyNbrs = 1
)

// Features are the raw signals of the heuristic, gathered in a single pass
// over the board.
type Features struct {
	Phase             Phase
	LiveGoats         int
	GoatsCaptured     int
	GoatsToPlace      int
	GoatMobility      int // empty cells next to a goat, summed over goats
	TigerMobility     int // empty cells next to a tiger, summed over tigers
	VulnerableGoats   int // captures available to the tigers right now
	SemiTrappedTigers int // tigers with at most one empty neighbour and no capture
	GoatCentrality    int
	TigerCentrality   int
	GoatClustering    int // goats with 3+ goat neighbours contribute neighbours-2
}

// ExtractFeatures computes the heuristic signals of gs.
func ExtractFeatures(gs *GameState) Features {
	f := Features{
		Phase:         gs.Phase(),
		GoatsCaptured: gs.GoatsCaptured,
		GoatsToPlace:  gs.GoatsToPlace,
	}

	for cell, piece := range gs.Board {
		switch piece {
		case Goat:
			f.LiveGoats++
			f.GoatCentrality += centralityRadius - CenterDistance(cell)
			goatNeighbors := 0
			for _, n := range Board.Neighbors(cell) {
				switch gs.Board[n] {
				case Empty:
					f.GoatMobility++
				case Goat:
					goatNeighbors++
				}
			}
			if goatNeighbors >= clusterThreshold {
				f.GoatClustering += goatNeighbors - 2
			}
		case Tiger:
			f.TigerCentrality += centralityRadius - CenterDistance(cell)
			empty, captures := 0, 0
			for _, n := range Board.Neighbors(cell) {
				switch gs.Board[n] {
				case Empty:
					empty++
				case Goat:
					if to, ok := Board.LandingFromJump(cell, n); ok && gs.Board[to] == Empty {
						captures++
					}
				}
			}
			f.TigerMobility += empty
			f.VulnerableGoats += captures
			if captures == 0 && empty <= semiTrappedMaxEmptyNbrs {
				f.SemiTrappedTigers++
			}
		}
	}
	return f
}

// Score combines the features with the heuristic weights.
func (f Features) Score() float64 {
	score := 0.0
	score += WeightLiveGoat * float64(f.LiveGoats)
	score += WeightCapturedGoat * float64(f.GoatsCaptured)
	score += WeightGoatMobility * float64(f.GoatMobility)
	score += WeightTigerMobility * float64(f.TigerMobility)
	score += WeightVulnerableGoat * float64(f.VulnerableGoats)
	score += WeightSemiTrappedTiger * float64(f.SemiTrappedTigers)
	score += WeightGoatCentrality * float64(f.GoatCentrality)
	score += WeightTigerCentrality * float64(f.TigerCentrality)
	if f.Phase == PlacementPhase {
		score += WeightClusterPlacement * float64(f.GoatClustering)
		score += WeightGoatLeftToPlace * float64(f.GoatsToPlace)
	} else {
		score += WeightClusterMovement * float64(f.GoatClustering)
	}
	return score
}

// EvaluateHeuristic is the default evaluator: the weighted sum of all
// features, positive when the goats stand better.
func EvaluateHeuristic(gs *GameState) float64 {
	return ExtractFeatures(gs).Score()
}

// EvaluateMaterial only counts live and captured goats. It is a weak
// baseline for comparing evaluators in experiments.
func EvaluateMaterial(gs *GameState) float64 {
	return WeightLiveGoat*float64(gs.Count(Goat)) + WeightCapturedGoat*float64(gs.GoatsCaptured)
}
