// cmd/paramgen generates the editor-side code fragments for new pad
// parameters from declarative descriptor files (CUE, YAML, or JSON).
//
// For each descriptor it emits the markup fragment, the default-value entry
// for the empty-record template, the display formatter/parser snippets for
// continuous parameters, and the updated registry membership lists. The
// fragments are printed for manual placement; paramgen never touches the
// host codebase itself.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/matthewbaird/paramgen/internal/compiler"
	"github.com/matthewbaird/paramgen/internal/loader"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("paramgen: ")

	empty := flag.Bool("empty", false, "start from an empty snapshot instead of the stock catalogue")
	asJSON := flag.Bool("json", false, "emit each artifact bundle as JSON")
	flag.Parse()

	if flag.NArg() == 0 {
		log.Fatal("usage: paramgen [-empty] [-json] <descriptor-file>...")
	}

	snap := compiler.DefaultSnapshot()
	if *empty {
		snap = compiler.NewSnapshot()
	}
	comp := compiler.New()

	for _, path := range flag.Args() {
		descs, err := loader.LoadFile(path)
		if err != nil {
			log.Fatalf("%v", err)
		}
		for _, d := range descs {
			bundle, err := comp.Compile(snap, d)
			if err != nil {
				log.Fatalf("%s: %v", path, err)
			}
			if *asJSON {
				printJSON(bundle)
			} else {
				printBundle(bundle)
			}
		}
	}
}

func printJSON(b compiler.Bundle) {
	out, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		log.Fatalf("encoding bundle for %s: %v", b.Name, err)
	}
	fmt.Println(string(out))
}

func printBundle(b compiler.Bundle) {
	fmt.Printf("### %s\n\n", b.Name)

	fmt.Println("1. Markup (add to the appropriate modal tab):")
	fmt.Println(b.Markup)

	fmt.Println("\n2. Default entry (createEmptyPadData params object):")
	fmt.Println(b.DefaultEntry + ",")

	if b.ForwardCase != "" {
		fmt.Println("\n3. Display formatter (updateParamDisplay switch):")
		fmt.Println(b.ForwardCase)

		fmt.Println("\n4. Display parser (parseDisplayValue switch):")
		fmt.Printf("case '%s':\n", b.Name)
		for _, line := range strings.Split(b.InverseExpr, "\n") {
			fmt.Printf("    %s\n", line)
		}
	}

	fmt.Println("\nMembership lists:")
	fmt.Printf("  setupParameterListeners sliders:   %s\n", strings.Join(b.Membership.ListenerSliders, ", "))
	fmt.Printf("  setupParameterListeners dropdowns: %s\n", strings.Join(b.Membership.ListenerDropdowns, ", "))
	fmt.Printf("  loadParamsToModal sliders:         %s\n", strings.Join(b.Membership.ModalSliders, ", "))
	fmt.Printf("  loadParamsToModal dropdowns:       %s\n", strings.Join(b.Membership.ModalDropdowns, ", "))
	fmt.Println()
}
