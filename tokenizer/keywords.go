package tokenizer

import "strings"

// KeywordSet is the DDL vocabulary (upper-case) that is reported as RESERVED_IDENTIFIER.
// Words that frequently appear as column names (NAME, TYPE, VALUE, ...) are intentionally absent.
var KeywordSet = map[string]struct{}{
	// Statement heads
	"CREATE": {}, "ALTER": {}, "DROP": {}, "INSERT": {},
	"SELECT": {}, "UPDATE": {}, "DELETE": {}, "COMMENT": {},
	"TABLE": {}, "VIEW": {}, "INDEX": {}, "SEQUENCE": {},
	"TRIGGER": {}, "SCHEMA": {}, "DATABASE": {}, "DOMAIN": {},
	"TEMPORARY": {}, "TEMP": {}, "GLOBAL": {}, "LOCAL": {},
	"UNLOGGED": {}, "IF": {}, "EXISTS": {}, "OR": {},
	"REPLACE": {},

	// Column and table constraints
	"CONSTRAINT": {}, "PRIMARY": {}, "FOREIGN": {}, "KEY": {},
	"REFERENCES": {}, "UNIQUE": {}, "CHECK": {}, "NOT": {},
	"NULL": {}, "DEFAULT": {}, "COLLATE": {}, "GENERATED": {},
	"ALWAYS": {}, "AS": {}, "IDENTITY": {}, "STORED": {},
	"VIRTUAL": {}, "AUTO_INCREMENT": {}, "AUTOINCREMENT": {},
	"LIKE": {}, "EXCLUDE": {}, "PERIOD": {}, "FOR": {},
	"SYSTEM_TIME": {}, "WITHOUT": {}, "OVERLAPS": {},

	// Referential actions
	"ON": {}, "CASCADE": {}, "RESTRICT": {}, "SET": {},
	"NO": {}, "ACTION": {}, "MATCH": {}, "FULL": {},
	"PARTIAL": {}, "SIMPLE": {}, "DEFERRABLE": {},
	"INITIALLY": {}, "DEFERRED": {}, "IMMEDIATE": {},

	// Table options
	"WITH": {}, "COMMIT": {}, "ROWS": {}, "PRESERVE": {},
	"INHERITS": {}, "PARTITION": {}, "BY": {}, "ENGINE": {},
	"CHARSET": {}, "CHARACTER_SET": {}, "USING": {}, "TABLESPACE": {},
	"ASC": {}, "DESC": {},

	// Literals and expressions inside DEFAULT / CHECK
	"TRUE": {}, "FALSE": {}, "AND": {}, "IN": {},
	"IS": {}, "BETWEEN": {}, "CASE": {}, "WHEN": {},
	"THEN": {}, "ELSE": {}, "END": {},
	"CURRENT_DATE": {}, "CURRENT_TIME": {}, "CURRENT_TIMESTAMP": {},
}

// BuiltinTypes is the vocabulary of predefined SQL type names and type modifiers
// (upper-case) reported as BUILTIN_TYPE.
var BuiltinTypes = map[string]struct{}{
	// character strings
	"CHAR": {}, "CHARACTER": {}, "VARCHAR": {}, "VARCHAR2": {}, "NCHAR": {}, "NVARCHAR": {},
	"NVARCHAR2": {}, "NATIONAL": {}, "VARYING": {}, "TEXT": {}, "TINYTEXT": {}, "MEDIUMTEXT": {},
	"LONGTEXT": {}, "CLOB": {}, "NCLOB": {}, "STRING": {}, "CITEXT": {},
	// binary strings
	"BINARY": {}, "VARBINARY": {}, "BLOB": {}, "TINYBLOB": {}, "MEDIUMBLOB": {}, "LONGBLOB": {},
	"BYTEA": {}, "RAW": {}, "BIT": {}, "LARGE": {}, "OBJECT": {},
	// exact numerics
	"NUMERIC": {}, "DECIMAL": {}, "DEC": {}, "NUMBER": {}, "MONEY": {},
	"SMALLINT": {}, "INTEGER": {}, "INT": {}, "BIGINT": {}, "TINYINT": {}, "MEDIUMINT": {},
	"INT2": {}, "INT4": {}, "INT8": {}, "SERIAL": {}, "SMALLSERIAL": {}, "BIGSERIAL": {},
	"UNSIGNED": {}, "SIGNED": {}, "ZEROFILL": {},
	// approximate numerics
	"FLOAT": {}, "FLOAT4": {}, "FLOAT8": {}, "REAL": {}, "DOUBLE": {}, "PRECISION": {},
	// boolean
	"BOOLEAN": {}, "BOOL": {},
	// datetime
	"DATE": {}, "TIME": {}, "TIMESTAMP": {}, "TIMESTAMPTZ": {}, "TIMETZ": {}, "DATETIME": {},
	"ZONE": {}, "INTERVAL": {}, "YEAR": {},
	// others
	"UUID": {}, "JSON": {}, "JSONB": {}, "XML": {},
}

// classifyWord maps a bare word to its token type.
func classifyWord(word string) TokenType {
	upper := strings.ToUpper(word)
	if _, ok := BuiltinTypes[upper]; ok {
		return BUILTIN_TYPE
	}
	if _, ok := KeywordSet[upper]; ok {
		return RESERVED_IDENTIFIER
	}
	return IDENTIFIER
}
