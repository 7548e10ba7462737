package pokemon

// The list document asks for the first N entries in one round trip. N comes
// from config; callers of ListPokemons never pass it.
const listDocument = `query pokemons($first: Int!) {
  pokemons(first: $first) {
    id
    number
    name
    image
    types
  }
}`

const detailDocument = `query pokemon($id: String, $name: String) {
  pokemon(id: $id, name: $name) {
    id
    number
    name
    weight {
      minimum
      maximum
    }
    height {
      minimum
      maximum
    }
    classification
    types
    resistant
    weaknesses
    fleeRate
    maxCP
    maxHP
    image
  }
}`
