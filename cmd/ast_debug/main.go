package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/DeusData/viewcode/internal/config"
	"github.com/DeusData/viewcode/internal/lang"
	"github.com/DeusData/viewcode/internal/parser"
	"github.com/DeusData/viewcode/internal/pipeline"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

func printAST(node *tree_sitter.Node, source []byte, indent int) {
	if node == nil {
		return
	}
	prefix := strings.Repeat("  ", indent)
	parentKind := "nil"
	if node.Parent() != nil {
		parentKind = node.Parent().Kind()
	}
	text := string(source[node.StartByte():node.EndByte()])
	if len(text) > 60 {
		text = text[:60] + "..."
	}
	marker := ""
	if node.IsError() {
		marker = " ERROR"
	} else if node.IsMissing() {
		marker = " MISSING"
	}
	fmt.Printf("%s%s%s (parent=%s) %q\n", prefix, node.Kind(), marker, parentKind, text)
	for i := uint(0); i < node.ChildCount(); i++ {
		printAST(node.Child(i), source, indent+1)
	}
}

// ast_debug prints the Swift syntax tree of generated code, or of a Swift
// file given with -swift.
func main() {
	syntax := flag.String("syntax", "", "output syntax override")
	swiftFile := flag.Bool("swift", false, "argument is a Swift file, not a dump")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: ast_debug [-syntax s] [-swift] <dump|file.swift>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	var code []byte
	if *swiftFile {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		code = data
	} else {
		cfg, err := config.Default().With(config.Overrides{OutputSyntax: *syntax})
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		out, err := pipeline.GenerateFile(context.Background(), path, cfg)
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		code = []byte(out.Result.Code)
		fmt.Printf("=== %s (%s) ===\n%s\n", out.Screen, out.Result.Syntax, code)
	}

	tree, err := parser.Parse(lang.Swift, code)
	if err != nil {
		fmt.Println("Error:", err)
	}
	if tree != nil {
		fmt.Println("=== SWIFT AST ===")
		printAST(tree.RootNode(), code, 0)
		tree.Close()
	}
}
