// Package wren contains the record admission and network-membership
// maintenance core of a wren node.
//
// A wren node participates in a peer-to-peer content-addressed storage
// network built on a Kademlia-style DHT. This module is the layer that
// keeps the node's view of that network alive and appropriately paced
// as it joins and grows (continuous bootstrap), frames the opaque byte
// blobs stored in the DHT by kind (the record codec in [wrec]), and
// cryptographically validates spend records before they reach storage
// (the spend types in [wspend]).
//
// The DHT routing table, its transport, and the stored-record database
// are external collaborators, injected through small interfaces on
// [NodeConfig]. Nothing in this module performs network I/O.
package wren
