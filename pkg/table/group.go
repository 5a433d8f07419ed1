package table

import (
	"maps"
	"math"

	"github.com/matst80/slask-table/pkg/types"
)

// groupRows nests rows by each groupBy column in turn. Groups keep the
// order in which their value was first seen.
func groupRows(rows []*Row, groupBy []*types.Column, all []types.Column, depth int, parentId string, parentKeys map[string]string, parentValues map[string]any) []*Row {
	if len(groupBy) == 0 {
		for _, r := range rows {
			r.Depth = depth
		}
		return rows
	}
	column := groupBy[0]
	order := make([]string, 0)
	buckets := make(map[string][]*Row)
	first := make(map[string]any)
	for _, r := range rows {
		value := r.Value(column)
		key := types.ValueString(value)
		if _, ok := buckets[key]; !ok {
			order = append(order, key)
			first[key] = value
		}
		buckets[key] = append(buckets[key], r)
	}

	ret := make([]*Row, 0, len(order))
	for _, key := range order {
		id := column.Id + ":" + key
		if parentId != "" {
			id = parentId + ">" + id
		}
		keys := maps.Clone(parentKeys)
		if keys == nil {
			keys = make(map[string]string)
		}
		keys[column.Id] = key
		values := maps.Clone(parentValues)
		if values == nil {
			values = make(map[string]any)
		}
		values[column.Id] = first[key]

		group := &Row{
			Id:         id,
			Depth:      depth,
			GroupById:  column.Id,
			GroupValue: key,
			groupKeys:   keys,
			groupValues: values,
		}
		group.SubRows = groupRows(buckets[key], groupBy[1:], all, depth+1, id, keys, values)
		group.LeafCount = countLeaves(group.SubRows)
		group.Aggregates = aggregate(group.Leaves(), all, keys)
		ret = append(ret, group)
	}
	return ret
}

func countLeaves(rows []*Row) int {
	total := 0
	for _, r := range rows {
		if r.IsGrouped() {
			total += r.LeafCount
		} else {
			total++
		}
	}
	return total
}

func aggregate(leaves []*types.Record, columns []types.Column, grouped map[string]string) map[string]any {
	ret := make(map[string]any)
	for i := range columns {
		column := &columns[i]
		if column.Aggregate == types.AggregateNone {
			continue
		}
		if _, ok := grouped[column.Id]; ok {
			continue
		}
		if v, ok := aggregateColumn(column, leaves); ok {
			ret[column.Id] = v
		}
	}
	return ret
}

func aggregateColumn(column *types.Column, leaves []*types.Record) (any, bool) {
	switch column.Aggregate {
	case types.AggregateCount:
		count := 0
		for _, r := range leaves {
			if column.Value(r) != nil {
				count++
			}
		}
		return count, true
	case types.AggregateUniqueCount:
		seen := make(map[string]struct{})
		for _, r := range leaves {
			seen[types.ValueString(column.Value(r))] = struct{}{}
		}
		return len(seen), true
	}

	numbers := make([]float64, 0, len(leaves))
	for _, r := range leaves {
		if n, ok := numberValue(column.Value(r)); ok {
			numbers = append(numbers, n)
		}
	}
	if len(numbers) == 0 {
		return nil, false
	}
	switch column.Aggregate {
	case types.AggregateSum, types.AggregateAverage:
		sum := 0.0
		for _, n := range numbers {
			sum += n
		}
		if column.Aggregate == types.AggregateAverage {
			return sum / float64(len(numbers)), true
		}
		return sum, true
	case types.AggregateMin:
		v := math.Inf(1)
		for _, n := range numbers {
			v = min(v, n)
		}
		return v, true
	case types.AggregateMax:
		v := math.Inf(-1)
		for _, n := range numbers {
			v = max(v, n)
		}
		return v, true
	}
	return nil, false
}

func numberValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}
