// Package deliver hands extracted transcript text to its destination.
//
// The core only needs "a function that places a string in the delivery
// target"; Deliverer is that function with a context and some metadata:
//
//	d := deliver.NewMultiDeliverer(
//	    &deliver.CommandDeliverer{Write: []string{"wl-copy"}},
//	    deliver.NewFileDeliverer("/tmp/excerpts.txt"),
//	)
//	err := d.Deliver(ctx, deliver.Delivery{Text: excerpt})
//
// Targets: LogDeliverer, WriterDeliverer, FileDeliverer, CommandDeliverer
// (clipboard), WebhookDeliverer, SlackDeliverer, GistDeliverer,
// SnippetDeliverer, MultiDeliverer and NopDeliverer. New builds one from the
// target specs stored in the configuration file.
//
// A Deliverer can travel in a context with WithDeliverer and
// DelivererFromContext; session.Copy prefers one found there over its
// configured target.
package deliver
