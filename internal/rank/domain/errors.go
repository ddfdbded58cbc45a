package domain

import "errors"

var (
	ErrUnknownRank     = errors.New("unknown_rank")
	ErrRankUnavailable = errors.New("rank_unavailable")
)
