package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"

	"mailrecon/core/config"
	"mailrecon/core/credential"
	"mailrecon/core/mailbox"
	"mailrecon/core/reconcile"
	"mailrecon/core/storage"
)

// Prints the fingerprint of every message of the given sources and the
// sender/subject buckets holding more than one message.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: debug_fingerprint <source>...")
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		log.Fatal(err)
	}
	deps := mailbox.Deps{
		Storage: client,
		Bucket:  cfg.Storage.Bucket,
		IMAP:    cfg.IMAP,
		Secrets: credential.Lazy(cfg.Credential),
	}

	ctx := context.Background()
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	buckets := make(map[string][]string)

	for _, location := range os.Args[1:] {
		src, err := mailbox.Open(location, deps)
		if err != nil {
			log.Fatal(err)
		}
		items, err := src.Load(ctx)
		if err != nil {
			log.Fatal(err)
		}

		fmt.Printf("=== %s (%d items) ===\n", src.Name(), len(items))
		for _, it := range items {
			if it.Err != nil || it.Record == nil {
				fmt.Printf("%s: unusable: %v\n", it.ID, it.Err)
				continue
			}
			fp := reconcile.Build(*it.Record, it.ID, it.SourceFile, it.FolderPath)
			if err := enc.Encode(fp); err != nil {
				log.Fatal(err)
			}
			key := fp.SenderSubjectKey()
			buckets[key] = append(buckets[key], fp.ID)
		}
	}

	keys := make([]string, 0, len(buckets))
	for k, ids := range buckets {
		if len(ids) > 1 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	fmt.Printf("=== %d shared sender/subject buckets ===\n", len(keys))
	for _, k := range keys {
		fmt.Printf("%s\n", k)
		for _, id := range buckets[k] {
			fmt.Printf("  %s\n", id)
		}
	}
}
