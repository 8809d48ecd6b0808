//go:build js && wasm

package main

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"syscall/js"
	"time"

	"github.com/rs/zerolog"

	"ansify/internal/adapter/definition"
	"ansify/internal/adapter/memstore"
	"ansify/internal/domain"
	"ansify/internal/usecase"
)

var history *memstore.MemoryStore

func init() {
	history = memstore.NewMemoryStore()
}

func main() {
	c := make(chan struct{})

	js.Global().Set("ansifyConvert", js.FuncOf(convertContent))
	js.Global().Set("ansifyHistory", js.FuncOf(listHistory))
	js.Global().Set("ansifyClear", js.FuncOf(clearHistory))

	<-c
}

func convertContent(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return makeError("usage: ansifyConvert(filename, content, [mode])")
	}

	filename := args[0].String()
	content := args[1].String()
	modeName := "ansi"
	if len(args) > 2 {
		modeName = args[2].String()
	}

	mode, err := domain.ParseMode(modeName)
	if err != nil {
		return makeError(err.Error())
	}

	converter := usecase.NewConvertUseCase(mode, definition.DefaultMaxLines, true, zerolog.Nop())
	output, result, err := converter.ConvertString(content)
	if err != nil {
		return makeError("conversion failed: " + err.Error())
	}

	err = history.Put(domain.ConversionRecord{
		Path:        filename,
		Hash:        hashContent(content),
		Mode:        mode.String(),
		ConvertedAt: time.Now(),
		Definitions: result.Definitions,
		Converted:   result.Converted,
		Warnings:    len(result.Diagnostics),
	})
	if err != nil {
		return makeError("failed to record conversion: " + err.Error())
	}

	return makeResult(map[string]interface{}{
		"output":      output,
		"definitions": result.Definitions,
		"converted":   result.Converted,
		"diagnostics": result.Diagnostics,
	})
}

func listHistory(this js.Value, args []js.Value) interface{} {
	recs, err := history.List()
	if err != nil {
		return makeError(err.Error())
	}
	return makeResult(map[string]interface{}{
		"files": recs,
	})
}

func clearHistory(this js.Value, args []js.Value) interface{} {
	if err := history.Clear(); err != nil {
		return makeError(err.Error())
	}
	return makeResult(map[string]interface{}{
		"success": true,
	})
}

func hashContent(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:8])
}

func makeError(msg string) interface{} {
	result, _ := json.Marshal(map[string]interface{}{
		"error": msg,
	})
	return string(result)
}

func makeResult(data map[string]interface{}) interface{} {
	result, _ := json.Marshal(data)
	return string(result)
}
