// Package finance fetches daily historical price series.
//
// Quotes are read as CSV with a Date,Open,High,Low,Close,Volume header,
// either from a file via [ParseCSV] or over HTTP via [Client], whose default
// endpoint is the stooq.com daily download:
//
//	c := finance.NewClient()
//	hist, err := c.Fetch(ctx, finance.Query{
//	    Symbols: []string{"aapl.us"},
//	    Start:   start,
//	    End:     end,
//	    Fill:    finance.FillForward,
//	})
//	closes := hist["aapl.us"].Column("Close")
package finance
