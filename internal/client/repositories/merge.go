package repositories

import (
	"sort"

	"github.com/dmitrijs2005/storykeeper/internal/client/models"
)

// pickMostRecent returns whichever copy carries the later updatedAt. Ties
// favor local: an offline edit stamped at the same instant as a remote one
// must not be discarded.
func pickMostRecent[T models.Entity](local, remote T) T {
	if remote.GetUpdatedAt().After(local.GetUpdatedAt()) {
		return remote
	}
	return local
}

// mergeByMostRecent folds both store listings into one result keyed by id,
// resolving collisions with pickMostRecent. Output is ordered by id so
// repeated reads are stable regardless of which store answered first.
func mergeByMostRecent[T models.Entity](locals, remotes []T) []T {
	merged := make(map[string]T, len(locals)+len(remotes))
	for _, e := range locals {
		merged[e.GetID()] = e
	}
	for _, e := range remotes {
		if local, ok := merged[e.GetID()]; ok {
			merged[e.GetID()] = pickMostRecent(local, e)
		} else {
			merged[e.GetID()] = e
		}
	}

	result := make([]T, 0, len(merged))
	for _, e := range merged {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].GetID() < result[j].GetID() })
	return result
}
