package table

// flattenExpanded lists rows in display order: every row, followed by the
// sub rows of the groups that are expanded.
func flattenExpanded(rows []*Row, isExpanded func(id string) bool) []*Row {
	ret := make([]*Row, 0, len(rows))
	for _, r := range rows {
		ret = append(ret, r)
		if r.IsGrouped() && isExpanded(r.Id) {
			r.Expanded = true
			ret = append(ret, flattenExpanded(r.SubRows, isExpanded)...)
		}
	}
	return ret
}

func pageCount(rows, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (rows + pageSize - 1) / pageSize
}

func clampPage(pageIndex, count int) int {
	return max(0, min(pageIndex, count-1))
}

func slicePage(rows []*Row, pageIndex, pageSize int) []*Row {
	start := pageIndex * pageSize
	if start >= len(rows) {
		return []*Row{}
	}
	end := min(start+pageSize, len(rows))
	return rows[start:end]
}
