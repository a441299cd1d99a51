package buildlog

// newLibrarySchema lists the lib.exe switches (case-insensitive).
func newLibrarySchema() *Schema {
	return newSchema(KindLibrary, false, "-/",
		textOpt("OUT").colon(),
		textOpt("DEF").colon(),
		textOpt("MACHINE").colon(),
		textOpt("SUBSYSTEM").colon(),
		textOpt("NAME").colon(),
		textOpt("EXTRACT").colon(),
		textOpt("ERRORREPORT").colon(),
		textOpt("LIST"),
		flagOpt("NOLOGO"),
		flagOpt("LTCG"),
		flagOpt("VERBOSE"),
		flagOpt("WX"),
		listOpt("LIBPATH").colon(),
		listOpt("NODEFAULTLIB"),
		listOpt("REMOVE").colon(),
		listOpt("EXPORT").colon(),
		listOpt("IGNORE").colon(),
		listOpt("INCLUDE").colon(),
	)
}

// newExecSchema lists the link.exe switches (case-insensitive). The image
// output switch is OUT.
func newExecSchema() *Schema {
	return newSchema(KindExec, false, "-/",
		// output
		textOpt("OUT").colon(),
		textOpt("IMPLIB").colon(),
		textOpt("PDB").colon(),
		textOpt("PDBALTPATH").colon(),
		textOpt("PDBSTRIPPED").colon(),
		textOpt("MAP"),
		listOpt("MAPINFO").colon(),
		textOpt("WINMD"),
		textOpt("WINMDFILE").colon(),
		textOpt("TLBOUT").colon(),
		textOpt("TLBID").colon(),
		textOpt("IDLOUT").colon(),
		textOpt("DEF").colon(),

		// image kind and layout
		flagOpt("DLL"),
		flagOpt("NOENTRY"),
		textOpt("ENTRY").colon(),
		textOpt("SUBSYSTEM").colon(),
		textOpt("MACHINE").colon(),
		textOpt("BASE").colon(),
		textOpt("STACK").colon(),
		textOpt("HEAP").colon(),
		textOpt("VERSION").colon(),
		textOpt("ALIGN").colon(),
		textOpt("FILEALIGN").colon(),
		flagOpt("FIXED"),
		flagOpt("DYNAMICBASE"),
		flagOpt("HIGHENTROPYVA"),
		flagOpt("NXCOMPAT"),
		flagOpt("LARGEADDRESSAWARE"),
		flagOpt("SAFESEH"),
		flagOpt("RELEASE"),
		flagOpt("TSAWARE"),
		flagOpt("APPCONTAINER"),
		textOpt("GUARD").colon(),
		textOpt("CETCOMPAT"),
		listOpt("SECTION").colon(),
		listOpt("MERGE").colon(),

		// libraries and symbols
		listOpt("LIBPATH").colon(),
		listOpt("DEFAULTLIB").colon(),
		listOpt("NODEFAULTLIB"),
		listOpt("DELAYLOAD").colon(),
		textOpt("DELAY").colon(),
		listOpt("EXPORT").colon(),
		listOpt("INCLUDE").colon(),
		listOpt("FORCE"),
		listOpt("ALTERNATENAME").colon(),
		listOpt("NATVIS").colon(),
		flagOpt("ASSEMBLYDEBUG"),
		listOpt("ASSEMBLYMODULE").colon(),
		listOpt("ASSEMBLYRESOURCE").colon(),

		// optimization
		listOpt("OPT").colon(),
		textOpt("LTCG"),
		flagOpt("INCREMENTAL"),
		textOpt("ORDER").colon(),
		flagOpt("PROFILE"),

		// debug
		textOpt("DEBUG"),
		textOpt("DEBUGTYPE").colon(),

		// manifest
		textOpt("MANIFEST"),
		textOpt("MANIFESTFILE").colon(),
		listOpt("MANIFESTUAC"),
		listOpt("MANIFESTDEPENDENCY").colon(),
		listOpt("MANIFESTINPUT").colon(),
		flagOpt("ALLOWISOLATION"),

		// diagnostics
		flagOpt("NOLOGO"),
		textOpt("VERBOSE"),
		flagOpt("WX"),
		listOpt("IGNORE").colon(),
		textOpt("ERRORREPORT").colon(),
		flagOpt("TIME"),
	)
}

// newManifestSchema lists the mt.exe switches (case-insensitive). The manifest
// option keeps collecting positional fragments until the next switch.
func newManifestSchema() *Schema {
	return newSchema(KindManifest, false, "-/",
		listOpt(manifestOption),
		textOpt(outputResourceOption).colon(),
		textOpt("inputresource").colon(),
		textOpt("updateresource").colon(),
		textOpt("out").colon(),
		textOpt("identity").colon(),
		textOpt("rgs").colon(),
		textOpt("tlb").colon(),
		textOpt("dll").colon(),
		textOpt("replacements").colon(),
		textOpt("managedassemblyname").colon(),
		textOpt("hashupdate"),
		textOpt("validate_file_hashes").colon(),
		flagOpt("nologo"),
		flagOpt("nodependency"),
		flagOpt("category"),
		flagOpt("validate_manifest"),
		flagOpt("canonicalize"),
		flagOpt("check_for_duplicates"),
		flagOpt("notify_update"),
		flagOpt("makecdfs"),
		flagOpt("verbose"),
	)
}
