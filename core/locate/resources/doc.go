/*
Package resources resolves fonts by name.

A font name may denote

▪︎ a font packaged with the application ("goregular", "gomono", "latinmodern"),

▪︎ a path to a font file,

▪︎ a font installed on the system, located via fontconfig (if configured) or
by searching the platform's font directories.

As resolving a system font may be a time-consuming task, resolving works in
an async/await fashion: ResolveTypeCase returns a promise, which the client
will call later to receive the loaded typecase. The call to the promise-function
will block until loading has completed.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package resources

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'textimg.resources'.
func tracer() tracing.Trace {
	return tracing.Select("textimg.resources")
}
