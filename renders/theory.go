package renders

const Theory = `
Self-Healing Execution:
Component source arrives from a generator that routinely references
bindings it never declared. Rather than failing the render, the harness
resolves a default for each missing binding (instance properties first,
a fixed table second, zero last), binds it into an environment local to
the invocation, and retries, up to five attempts in total. The
environment is rebuilt for every invocation, so a default bound while
healing one instance can never leak into another.

Flicker Avoidance:
Every component id keeps a {current, lastGood} pair. A successful
compile swaps both; a failing compile records its error and leaves
lastGood alone. Rendering prefers current and falls back to lastGood
transparently, so editing a working component through a broken
intermediate state never flashes an error panel. The panel appears only
when no good unit has ever existed for that id.

Runaway Detection:
State updates schedule re-renders, and generated logic sometimes
updates state unconditionally on every render. Each instance counts its
render cycles and forgets the count after a second of quiet; more than
fifty cycles inside one unquiet window is declared a loop and is fatal
for that instance only.
`
