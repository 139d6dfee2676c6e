// meta/meta.go
package meta

// TRIALS_PER_MOVE defines the number of playouts run per legal direction.
const TRIALS_PER_MOVE = 500

// GO_ROUTINES defines the number of playout workers.
const GO_ROUTINES = 1

// MAX_TURNS caps the turns of one game, 0 plays until no move is left.
const MAX_TURNS = 0

const GAMES = 1
