// Package modules enumerates the modules loaded by the host.
//
// Enumerate is the single entry point every stage of a pass uses to visit
// modules. It tolerates modules that fail to introspect: an error wrapping
// host.ErrTypesFailedToLoad skips that module, never the whole pass.
//
// ManifestLoader is the file-backed host.ModuleLoader used by the ccu CLI.
// Each *.yaml file in the manifest directory describes one module's types and
// its module-level attribute instances:
//
//	name: Game.Runtime
//	types:
//	  - name: Game.OptionalDependencyAttribute
//	    base: System.Attribute
//	    annotations:
//	      - type: System.Diagnostics.ConditionalAttribute
//	        args: ["UNITY_CCU"]
//	    fields:
//	      - {name: dependentClass, type: string}
//	      - {name: define, type: string}
//	attributes:
//	  - type: Game.OptionalDependencyAttribute
//	    fields: {dependentClass: Foo.Bar, define: USE_BAR}
//
// Index flattens the loaded types into one name lookup for base-chain walks.
package modules
