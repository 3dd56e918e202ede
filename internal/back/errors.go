package back

import "kicker/internal/util"

// Submission errors, all public: the frontends echo them to the submitter.
// Compare with == rather than errors.Is, ErrPublic matches any ErrPublic.
var (
	ErrTiedScore          = util.ErrPublic("tied scores are not allowed, play until there is a winner")
	ErrInvalidComposition = util.ErrPublic("there must be at least one registered player in the teams composition")
	ErrUnknownPlayer      = util.ErrPublic("one of the given players does not exist")
	ErrUnknownKicker      = util.ErrPublic("this kicker does not exist")
)
