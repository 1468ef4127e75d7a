// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Command libmars builds the runtime as a C archive for programs emitted by
// the x86-64 code generator:
//
//	go build -buildmode=c-archive -o libmars.a ./cmd/libmars
//	gcc -no-pie prog.s libmars.a -lpthread -o prog
//
// Settings are read from the file named by MARSRT_CONFIG and from the
// MARSRT_* environment variables.
package main

/*
#include <stdint.h>
*/
import "C"

import (
	"fmt"
	"os"

	"drewnomars.net/marsrt/internal/config"
	"drewnomars.net/marsrt/pkg/marsrt"
)

var rt = mustRuntime()

func mustRuntime() *marsrt.Runtime {
	cfg, err := config.Load(os.Getenv(config.EnvConfigPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "marsrt: %v\n", err)
		os.Exit(1)
	}
	r, err := marsrt.New(marsrt.WithConfig(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "marsrt: %v\n", err)
		os.Exit(1)
	}
	return r
}

//export printBool
func printBool(c C.int64_t) {
	rt.PrintBool(int64(c))
}

//export printInt
func printInt(num C.long) {
	rt.PrintInt(int64(num))
}

//export printString
func printString(str *C.char) {
	if str == nil {
		return
	}
	rt.PrintString(C.GoString(str))
}

//export getBool
func getBool() C.int64_t {
	return C.int64_t(rt.GetBool())
}

//export getInt
func getInt() C.int64_t {
	return C.int64_t(rt.GetInt())
}

//export magic
func magic() C.int64_t {
	return C.int64_t(rt.Magic())
}

// marsrt_close releases the transcript store. Generated code may call it
// before the exit syscall.
//
//export marsrt_close
func marsrt_close() {
	rt.Close()
}

func main() {}
