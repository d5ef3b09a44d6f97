package value

import (
	"fmt"
	"sort"
)

// Changes lists the paths of the slices that differ by identity between old
// and next. Unchanged subtrees are skipped with a single Same check, so the
// cost is proportional to the part of the tree an update rewrote.
//
// Object keys are joined with "." and list positions are rendered as "[i]".
// The root is reported as "" when it was replaced by a non-container value.
// Returns nil when nothing changed.
func Changes(old, next any) []string {
	var paths []string
	collect(&paths, "", old, next)
	if len(paths) == 0 {
		return nil
	}
	sort.Strings(paths)
	return paths
}

func collect(paths *[]string, path string, old, next any) {
	if Same(old, next) {
		return
	}

	oldObj, okOld := old.(Object)
	nextObj, okNext := next.(Object)
	if okOld && okNext && oldObj != nil && nextObj != nil {
		for k, v := range nextObj {
			collect(paths, join(path, k), oldObj[k], v)
		}
		// Deletions
		for k, v := range oldObj {
			if _, exists := nextObj[k]; !exists {
				collect(paths, join(path, k), v, nil)
			}
		}
		return
	}

	oldList, okOld := old.(List)
	nextList, okNext := next.(List)
	if okOld && okNext && len(oldList) == len(nextList) {
		for i := range nextList {
			collect(paths, fmt.Sprintf("%s[%d]", path, i), oldList[i], nextList[i])
		}
		return
	}

	*paths = append(*paths, path)
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
