package db

// SchemaSQL defines the job table. Each record holds one job document and
// its position in the collection; the record id is the job id.
const SchemaSQL = `
    DEFINE TABLE IF NOT EXISTS job SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS position ON job TYPE int;
    DEFINE FIELD IF NOT EXISTS data ON job TYPE object FLEXIBLE;
    DEFINE FIELD IF NOT EXISTS updated ON job TYPE datetime VALUE time::now();

    DEFINE INDEX IF NOT EXISTS job_position ON job FIELDS position;
`
