/*
Package sdk provides a Measurement Protocol client for reporting hits
(pageviews, events, screenviews, ecommerce and timing data) to Google
Analytics.

# Quick Start

	client, err := sdk.New(sdk.ClientConfig{
	    TrackingID: "UA-XXXX-Y",
	    UserAgent:  "my-app/1.0",
	})
	if err != nil {
	    log.Fatal(err)
	}

	ok, err := client.
	    Screenview(hit.Screenview{
	        AppName:    "my-app",
	        AppVersion: "1.0.0",
	        ScreenName: "Home",
	    }).
	    Append(hit.Pairs("sr", "1920*1080", "ul", "en-US")...).
	    Send(ctx)

# Queue

Every builder method (Pageview, Event, Screenview, Transaction, Social,
Exception, Refund, Item, TimingTrack) creates one hit and appends it to
the client's queue. Append merges extra parameters into the most recently
queued hit; later values replace earlier ones for the same key.

Body returns the wire lines of the first 20 queued hits, the most a single
request may carry.

# Sending

Send posts the head of the queue:

  - one hit goes to /collect
  - two or more go to /batch
  - in debug mode everything goes to /debug/collect and the result is the
    validator's verdict on the first hit

Send does not remove anything from the queue; calling it twice delivers the
same hits twice. Flush sends the whole queue in batches of 20 and empties
it as it goes.

A rejected request returns a *DispatchError carrying the response body,
unless the endpoint answered with an image/gif pixel, in which case Send
returns false without an error.

# Concurrency

A Client is meant to be owned by a single goroutine. Wrap it in a
batch.Batcher to record hits from many goroutines; the batcher flushes on a
timer and whenever a full batch is queued:

	b := batch.New(client, batch.Config{FlushEvery: 10 * time.Second})
	b.Start(ctx)
	defer b.Stop()

	b.Add(hit.Event{Category: "video", Action: "play"})

httpx.Middleware records a pageview for every served request through a
batcher.
*/
package sdk
