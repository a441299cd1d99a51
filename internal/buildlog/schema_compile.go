package buildlog

// newVsCompileSchema lists the cl.exe switches. Names are case-sensitive and
// the object-file switch (Fo) is the designated output.
func newVsCompileSchema() *Schema {
	return newSchema(KindVsCompile, true, "-/",
		// compilation control
		flagOpt("c"),
		flagOpt("nologo"),
		flagOpt("E"),
		flagOpt("EP"),
		flagOpt("P"),
		flagOpt("TC"),
		flagOpt("TP"),
		listOpt("Tc").separate(),
		listOpt("Tp").separate(),
		flagOpt("showIncludes"),
		flagOpt("bigobj"),
		textOpt("MP"),
		flagOpt("FS"),
		flagOpt("Zs"),
		flagOpt("X"),
		flagOpt("u"),

		// optimization
		flagOpt("Od"),
		flagOpt("O1"),
		flagOpt("O2"),
		flagOpt("Ox"),
		flagOpt("Os"),
		flagOpt("Ot"),
		flagOpt("Oi"),
		flagOpt("Oy"),
		textOpt("Ob"),
		flagOpt("GL"),
		flagOpt("Gy"),
		flagOpt("Gw"),
		flagOpt("GF"),

		// code generation
		flagOpt("GS"),
		flagOpt("GR"),
		flagOpt("Gm"),
		flagOpt("Gd"),
		flagOpt("Gr"),
		flagOpt("Gz"),
		flagOpt("Gv"),
		flagOpt("Gs"),
		textOpt("EH"),
		textOpt("RTC"),
		textOpt("arch").colon(),
		textOpt("fp").colon(),
		textOpt("favor").colon(),
		textOpt("guard").colon(),
		textOpt("Qspectre"),
		flagOpt("Qpar"),
		flagOpt("openmp"),
		flagOpt("MD"),
		flagOpt("MDd"),
		flagOpt("MT"),
		flagOpt("MTd"),
		flagOpt("LD"),
		flagOpt("LDd"),
		textOpt("F"),

		// language
		flagOpt("Za"),
		flagOpt("Ze"),
		listOpt("Zc").colon(),
		flagOpt("Zl"),
		textOpt("Zm"),
		textOpt("Zp"),
		textOpt("std").colon(),
		flagOpt("permissive"),
		flagOpt("sdl"),
		flagOpt("utf-8"),
		textOpt("source-charset").colon(),
		textOpt("execution-charset").colon(),
		flagOpt("J"),

		// debug information
		flagOpt("Zi"),
		flagOpt("Z7"),
		flagOpt("ZI"),
		flagOpt("Zf"),
		flagOpt("Zo"),

		// diagnostics
		textOpt("W"),
		flagOpt("Wall"),
		flagOpt("WX"),
		flagOpt("w"),
		listOpt("wd"),
		listOpt("we"),
		listOpt("wo"),
		textOpt("diagnostics").colon(),
		textOpt("errorReport").colon(),
		flagOpt("analyze"),

		// preprocessor
		listOpt("D").separate(),
		listOpt("U").separate(),
		listOpt("I").separate(),
		listOpt("FI").separate(),
		listOpt("AI").separate(),
		listOpt("FU").separate(),
		listOpt("external").colon(),

		// precompiled headers
		textOpt("Yc"),
		textOpt("Yu"),
		textOpt("Yl"),
		flagOpt("Y-"),
		textOpt("Fp").separate(),

		// output files
		textOpt("Fo").separate(),
		textOpt("Fd").separate(),
		textOpt("Fe").separate(),
		textOpt("Fa"),
		textOpt("FA"),
		textOpt("FR"),
		textOpt("Fr"),
		textOpt("Fm"),
		textOpt("Fi"),
		flagOpt("FC"),
	)
}

// newGccCompileSchema lists the GNU compiler driver switches that show up in
// build logs. Only "-" introduces a switch so absolute POSIX paths stay
// operands.
func newGccCompileSchema() *Schema {
	return newSchema(KindGccCompile, true, "-",
		flagOpt("c"),
		flagOpt("E"),
		flagOpt("S"),
		textOpt("o").separate(),
		flagOpt("g"),
		textOpt("O"),
		flagOpt("Wall"),
		flagOpt("Wextra"),
		flagOpt("Werror"),
		listOpt("W"),
		listOpt("f"),
		flagOpt("msse2"),
		listOpt("m"),
		textOpt("std="),
		listOpt("I").separate(),
		listOpt("isystem").separate(),
		listOpt("include").separate(),
		listOpt("D").separate(),
		listOpt("U").separate(),
		listOpt("L").separate(),
		listOpt("l").separate(),
		textOpt("x").separate(),
		flagOpt("MD"),
		flagOpt("MMD"),
		flagOpt("MP"),
		textOpt("MF").separate(),
		textOpt("MT").separate(),
		flagOpt("shared"),
		flagOpt("static"),
		flagOpt("pthread"),
		flagOpt("pipe"),
		flagOpt("pedantic"),
		flagOpt("rdynamic"),
		flagOpt("v"),
	)
}

// newObfuscatedSchema has a single output switch; the input is positional.
func newObfuscatedSchema() *Schema {
	return newSchema(KindObfuscated, true, "-/",
		textOpt("o").separate(),
	)
}
