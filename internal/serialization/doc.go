// Package serialization saves and loads network parameters as SafeTensors
// files.
//
// A checkpoint holds nothing but the raw weight and bias arrays of every
// layer, plus string metadata:
//
//	File Structure:
//	  [8 bytes: Header Size (uint64 LE)]
//	  [Header: JSON, one entry per tensor plus "__metadata__"]
//	  [Tensor data: float64 LE, tensors in name order]
//
// Tensors are named "layer.<i>.weight" (shape [in, out]) and "layer.<i>.bias"
// (shape [out]). The writer stores a SHA-256 of the data section under the
// "sha256" metadata key and the reader verifies it when present.
//
// Example usage:
//
//	// Save a trained network
//	if err := serialization.Save("xor.safetensors", serialization.FromNetwork(net)); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Load it back
//	state, err := serialization.Load("xor.safetensors")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	net, err := state.Network(fcnn.Config{})
package serialization
