package fetch

import "context"

// Job is one download.
type Job struct {
	URL  string
	Dest string
}

// RunAll downloads jobs in order, pausing between them. The first failure
// aborts the batch.
func RunAll(ctx context.Context, f Fetcher, pacer *Pacer, jobs []Job) error {
	for _, job := range jobs {
		if pacer != nil {
			if err := pacer.Wait(ctx); err != nil {
				return err
			}
		}
		if err := f.Fetch(ctx, job.URL, job.Dest); err != nil {
			return err
		}
	}
	return nil
}
