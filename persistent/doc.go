/*
Immutable persistent data structures are data structures which can be copied and modified
efficiently, leaving the original unchanged. Functional programming languages like Lisp have long
relied on using them.
This package offers a data structure with similar properties, tailored for functions over a
breakpoint axis (see sub-package steps).

Immutable data structures in many cases offer benefits over mutable data structures in terms
of concurrent access and functional reasoning. Every modification of a persistent step map
produces a new incarnation; older incarnations stay valid and may be shared freely between
goroutines.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package persistent
