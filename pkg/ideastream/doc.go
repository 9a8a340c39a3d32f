// Package ideastream turns the NDJSON stream of an idea-analysis service
// into a typed result.
//
// Quick start:
//
//	resp, _ := http.Post(url, contentType, body)
//	defer resp.Body.Close()
//
//	report, err := ideastream.Decode(ctx, resp.Body)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if report.Result != nil {
//	    fmt.Println(report.Result.OverallSummary)
//	} else {
//	    for _, env := range report.Raw {
//	        fmt.Println(env.Step, env.Content)
//	    }
//	}
//
// The upstream emits results as structured objects, as semi-structured
// key=[...] / key='...' text, or as free text. Decode and Normalize accept
// all three; when no domain can be extracted the raw envelopes are returned
// instead of a Result.
package ideastream
