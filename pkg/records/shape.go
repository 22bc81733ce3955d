package records

// Shape turns one raw /records response into a Result for the given page.
//
// raw may hold more than PageItems records; only the first PageItems are
// summarized, but the extra record is what marks a next page as available.
func Shape(raw []Record, page int) Result {
	lastPage := len(raw) <= PageItems
	if len(raw) > PageItems {
		raw = raw[:PageItems]
	}

	res := Result{
		IDs:  make([]int, 0, len(raw)),
		Open: make([]OpenRecord, 0, len(raw)),
	}

	for _, rec := range raw {
		res.IDs = append(res.IDs, rec.ID)

		switch rec.Disposition {
		case DispositionOpen:
			res.Open = append(res.Open, OpenRecord{
				Record:    rec,
				IsPrimary: IsPrimaryColor(rec.Color),
			})
		case DispositionClosed:
			if IsPrimaryColor(rec.Color) {
				res.ClosedPrimaryCount++
			}
		}
	}

	if page != 1 {
		prev := page - 1
		res.PreviousPage = &prev
	}
	if !lastPage {
		next := page + 1
		res.NextPage = &next
	}

	return res
}
