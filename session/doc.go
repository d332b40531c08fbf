// Package session runs one live-caption mirror: it polls a caption source,
// folds each snapshot into the transcript History, tracks the copy anchor
// and hands extracted text to a deliverer.
//
// A Session serializes every state change behind a single mutex. Copy reads
// History under that lock and then delivers outside it, so polling keeps
// going while a slow paste is in progress. Overlapping copies are dropped,
// not queued.
//
// Basic use:
//
//	s, err := session.New(session.Config{
//		Source:    source.NewFileSource("/tmp/captions.txt"),
//		Deliverer: deliver.NewLogDeliverer(nil),
//	})
//	if err != nil {
//		return err
//	}
//	defer s.Close(ctx)
//
//	go s.Run(ctx)
//	...
//	res, err := s.Copy(ctx)
package session
