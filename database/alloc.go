package database

// NextFreeID returns the smallest positive id missing from ids, scanning [1, max+1].
// Non-positive ids are ignored.
func NextFreeID(ids []int) int {
	seen := make(map[int]struct{}, len(ids))
	max := 0
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		seen[id] = struct{}{}
		if id > max {
			max = id
		}
	}
	for i := 1; i <= max; i++ {
		if _, ok := seen[i]; !ok {
			return i
		}
	}
	return max + 1
}

// gapSQL computes the same value as NextFreeID inside the database.
const gapSQL = `SELECT s.i
FROM generate_series(1, (SELECT COALESCE(MAX(id), 0) + 1 FROM contamination_sites)) s(i)
WHERE NOT EXISTS (SELECT 1 FROM contamination_sites WHERE id = s.i)
ORDER BY s.i ASC
LIMIT 1`
