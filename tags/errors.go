package tags

import "errors"

// ErrEmptyPartition reports that a mandatory category set came out empty
// after classification: the levelset does not actually cross (or does not
// avoid) the mesh domain as expected. Fatal, no retry.
var ErrEmptyPartition = errors.New("empty tag partition")
